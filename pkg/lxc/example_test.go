package lxc_test

import (
	"errors"
	"fmt"

	"github.com/quadrifoglio/lxc-go/pkg/lxc"
)

// Example shows the basic lifecycle of a container: create from a template,
// start it, take a snapshot and destroy it.
func Example() {
	store, err := lxc.New(lxc.Config{})
	if err != nil {
		fmt.Println("lxc not available:", err)
		return
	}

	tpl := lxc.NewTemplate("download").
		Option("-d", "alpine").
		Option("-r", "3.6").
		Option("-a", "amd64")

	ct, err := store.Create("test", *tpl)
	if err != nil {
		if errors.Is(err, lxc.ErrAlreadyExists) {
			fmt.Println("container already exists")
		}
		return
	}

	if err := ct.Start(); err != nil {
		ct.Release()
		return
	}

	fmt.Println(ct.State())

	_ = ct.Stop()

	if _, err := ct.Snapshot(""); err != nil {
		ct.Release()
		return
	}

	// DestroyWithSnapshots consumes the handle, no release needed after it.
	_ = ct.DestroyWithSnapshots()
}
