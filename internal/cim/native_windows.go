//go:build windows

package cim

import "github.com/yusufpapurcu/wmi"

func nativeQuery(query string, dst any) error {
	return wmi.Query(query, dst)
}
