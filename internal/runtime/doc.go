// Package runtime wires config, the scheme registry, metrics and the
// checkpoint store into a single-node seqid instance.
//
//	rt, err := runtime.Open(ctx, runtime.Options{Config: cfg, Logger: logger})
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//	iss, _ := rt.Registry().Lookup("milli36")
//	s := iss.Generate()
package runtime
