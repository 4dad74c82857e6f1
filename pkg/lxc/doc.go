// Package lxc is the public SDK for managing LXC containers through the
// native liblxc library.
//
// Create a [Store] with [New], then look up or create containers:
//
//	store, err := lxc.New(lxc.Config{})
//	if err != nil {
//	    return err
//	}
//
//	tpl := lxc.NewTemplate("download").
//	    Option("-d", "alpine").
//	    Option("-r", "3.6").
//	    Option("-a", "amd64")
//
//	ct, err := store.Create("test", *tpl)
//	if err != nil {
//	    return err
//	}
//	defer ct.Release()
//
//	if err := ct.Start(); err != nil {
//	    return err
//	}
//
// Containers own a native handle and must be released exactly once, with
// [Container.Release] or by destroying them. Methods are blocking and not
// safe for concurrent use on the same container.
package lxc
