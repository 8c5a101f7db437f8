package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// mockFunction mocks a free function with a global expectation store. It
// returns the description used for the module's checkpoint and the
// generated store, wrapper and expect_ accessor.
func mockFunction(vis syntax.Visibility, sig *syntax.Signature) (*methodInfo, string, error) {
	if recv := sig.Receiver(); recv != nil {
		return nil, "", errorAt(recv, "free functions cannot take a receiver")
	}

	m, err := newMethodInfo(sig, nil)
	if err != nil {
		return nil, "", err
	}
	m.Signature = visString(vis) + m.Signature

	code, err := execute("function", m)
	if err != nil {
		return nil, "", err
	}

	return m, code, nil
}
