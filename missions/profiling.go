package missions

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
)

// startProfiling turns on the profilers selected by the train flags. The
// returned stop function flushes the profiles and is safe to call when
// profiling is off.
func startProfiling(cpuProfile, memProfile string) (func(), error) {
	if cpuProfile == "" && memProfile == "" {
		return func() {}, nil
	}
	// profiles are always files, regardless of the artifact store
	if err := os.MkdirAll(saveDir, 0777); err != nil {
		return nil, fmt.Errorf("error creating save directory: %s", err)
	}

	stopCPU := func() {}
	if cpuProfile != "" {
		profPath := path.Join(saveDir, cpuProfile)
		fmt.Println("Profiling CPU to", profPath)
		f, err := os.Create(profPath)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %s", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("could not start CPU profile: %s", err)
		}
		stopCPU = func() {
			pprof.StopCPUProfile()
			f.Close()
		}
	}
	return func() {
		stopCPU()
		if memProfile == "" {
			return
		}
		profPath := path.Join(saveDir, memProfile)
		fmt.Println("Profiling memory to", profPath)
		f, err := os.Create(profPath)
		if err != nil {
			fmt.Printf("could not create memory profile: %s\n", err)
			return
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Printf("could not write memory profile: %s\n", err)
		}
	}, nil
}
