//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// AcceptEx, ConnectEx, and GetAcceptExSockaddrs are not exported by WinSock
// as ordinary symbols: a socket must request their addresses at runtime via
// WSAIoctl(SIO_GET_EXTENSION_FUNCTION_POINTER). The per-process
// function-pointer table for these extended accept/connect operations is
// initialized once on first use, guarded by a one-shot latch.
var (
	mswsock = windows.NewLazySystemDLL("mswsock.dll")
	ws2_32  = windows.NewLazySystemDLL("ws2_32.dll")

	procWSAIoctl = ws2_32.NewProc("WSAIoctl")

	extFuncsOnce sync.Once
	extFuncsErr  error

	acceptExFunc            uintptr
	connectExFunc           uintptr
	getAcceptExSockaddrFunc uintptr
)

const ioc_wsProtocol = 0x08000000
const ioc_inout = 0xC0000000
const iocVendor = 0x18000000
const sioGetExtensionFunctionPointer = ioc_inout | ioc_wsProtocol | 6

// GUIDs for the three extension functions, per the Windows SDK's
// <mswsock.h>.
var (
	guidAcceptEx            = windows.GUID{Data1: 0xb5367df1, Data2: 0xcbac, Data3: 0x11cf, Data4: [8]byte{0x95, 0xca, 0x00, 0x80, 0x5f, 0x48, 0xa1, 0x92}}
	guidConnectEx            = windows.GUID{Data1: 0x25a207b9, Data2: 0xddf3, Data3: 0x4660, Data4: [8]byte{0x8e, 0xe9, 0x76, 0xe5, 0x8c, 0x74, 0x06, 0x3e}}
	guidGetAcceptExSockaddrs = windows.GUID{Data1: 0xb5367df2, Data2: 0xcbac, Data3: 0x11cf, Data4: [8]byte{0x95, 0xca, 0x00, 0x80, 0x5f, 0x48, 0xa1, 0x92}}
)

func loadExtensionFunction(s windows.Handle, guid *windows.GUID) (uintptr, error) {
	var fn uintptr
	var bytes uint32
	ret, _, err := procWSAIoctl.Call(
		uintptr(s),
		uintptr(sioGetExtensionFunctionPointer),
		uintptr(unsafe.Pointer(guid)),
		unsafe.Sizeof(*guid),
		uintptr(unsafe.Pointer(&fn)),
		unsafe.Sizeof(fn),
		uintptr(unsafe.Pointer(&bytes)),
		0,
		0,
	)
	if ret != 0 {
		return 0, err
	}
	return fn, nil
}

// callAcceptEx invokes the AcceptEx extension function resolved by
// [initExtensionFunctions]. recvBuf must be at least
// 2*(unsafeSockaddrMax+16) bytes; see [AcceptReceiveOp.AddressBuffer].
func callAcceptEx(listenSocket, acceptSocket windows.Handle, recvBuf *byte, sockaddrSize uint32,
	bytesReceived *uint32, overlapped *windows.Overlapped) error {
	r1, _, err := windows.SyscallN(acceptExFunc,
		uintptr(listenSocket),
		uintptr(acceptSocket),
		uintptr(unsafe.Pointer(recvBuf)),
		0,
		uintptr(sockaddrSize),
		uintptr(sockaddrSize),
		uintptr(unsafe.Pointer(bytesReceived)),
		uintptr(unsafe.Pointer(overlapped)),
	)
	if r1 == 0 {
		return err
	}
	return nil
}

// callConnectEx invokes the ConnectEx extension function. The socket must
// already be bound (even to the wildcard address) before calling ConnectEx.
//
// windows.SockaddrInet4's conversion to the raw form the kernel expects is
// unexported outside its own package, so this builds the raw structure by
// hand rather than calling it.
func callConnectEx(socket windows.Handle, addr *windows.SockaddrInet4, sendBuf []byte,
	bytesSent *uint32, overlapped *windows.Overlapped) error {
	raw := windows.RawSockaddrInet4{
		Family: windows.AF_INET,
		Addr:   addr.Addr,
	}
	raw.Port = uint16(addr.Port)<<8 | uint16(addr.Port)>>8 // host to network byte order

	var bufPtr *byte
	if len(sendBuf) > 0 {
		bufPtr = &sendBuf[0]
	}
	r1, _, callErr := windows.SyscallN(connectExFunc,
		uintptr(socket),
		uintptr(unsafe.Pointer(&raw)),
		uintptr(unsafe.Sizeof(raw)),
		uintptr(unsafe.Pointer(bufPtr)),
		uintptr(len(sendBuf)),
		uintptr(unsafe.Pointer(bytesSent)),
		uintptr(unsafe.Pointer(overlapped)),
	)
	if r1 == 0 {
		return callErr
	}
	return nil
}

// callGetAcceptExSockaddrs parses the address buffer AcceptEx filled in,
// returning the local and remote addresses.
func callGetAcceptExSockaddrs(buf *byte, sockaddrSize uint32) (local, remote *windows.RawSockaddrAny) {
	var localLen, remoteLen int32
	windows.SyscallN(getAcceptExSockaddrFunc,
		uintptr(unsafe.Pointer(buf)),
		0,
		uintptr(sockaddrSize),
		uintptr(sockaddrSize),
		uintptr(unsafe.Pointer(&local)),
		uintptr(unsafe.Pointer(&localLen)),
		uintptr(unsafe.Pointer(&remote)),
		uintptr(unsafe.Pointer(&remoteLen)),
	)
	return local, remote
}

// initExtensionFunctions resolves AcceptEx/ConnectEx/GetAcceptExSockaddrs
// exactly once per process, using a throwaway socket of the right family.
func initExtensionFunctions() error {
	extFuncsOnce.Do(func() {
		s, err := windows.Socket(windows.AF_INET, windows.SOCK_STREAM, windows.IPPROTO_TCP)
		if err != nil {
			extFuncsErr = err
			return
		}
		defer windows.CloseHandle(s)

		if acceptExFunc, extFuncsErr = loadExtensionFunction(s, &guidAcceptEx); extFuncsErr != nil {
			return
		}
		if connectExFunc, extFuncsErr = loadExtensionFunction(s, &guidConnectEx); extFuncsErr != nil {
			return
		}
		if getAcceptExSockaddrFunc, extFuncsErr = loadExtensionFunction(s, &guidGetAcceptExSockaddrs); extFuncsErr != nil {
			return
		}
	})
	return extFuncsErr
}
