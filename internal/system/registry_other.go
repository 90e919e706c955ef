//go:build !windows

package system

func openStore() (Store, bool) {
	return nil, false
}
