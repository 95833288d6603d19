package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/everybit/everybit"
)

func main() {
	var small, medium, large bool
	var testPath string
	var only int
	var parallel bool
	var engineName string
	var seed int64

	flag.BoolVar(&small, "s", false, "run the small (0.01s) rotation performance test")
	flag.BoolVar(&medium, "m", false, "run the medium (0.1s) rotation performance test")
	flag.BoolVar(&large, "l", false, "run the large (1s) rotation performance test")
	flag.StringVar(&testPath, "t", "", "run the functional tests in this file")
	flag.IntVar(&only, "n", -1, "only run the functional test with this number")
	flag.BoolVar(&parallel, "parallel", false, "run functional tests concurrently")
	flag.StringVar(&engineName, "engine", "naive", "rotation engine for timing (naive or reversal)")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for timed rotations")
	flag.Usage = printUsage
	flag.Parse()

	if testPath != "" {
		runFunctionalTests(testPath, only, parallel)
		return
	}

	var limit time.Duration
	switch {
	case small:
		limit = everybit.SmallLimit
	case medium:
		limit = everybit.MediumLimit
	case large:
		limit = everybit.LargeLimit
	default:
		printUsage()
		return
	}

	var engine everybit.Engine
	switch engineName {
	case "naive":
		engine = everybit.NaiveEngine
	case "reversal":
		engine = everybit.ReversalEngine
	default:
		essentials.Die("unsupported engine:", engineName)
	}

	log.Printf("timing %s rotations with limit %v (seed %d)", engineName, limit, seed)
	tier := everybit.TimedRotation(rand.New(rand.NewSource(seed)), engine, limit)
	fmt.Println("---- RESULTS ----")
	fmt.Printf("Succesfully completed tier: %d\n", tier)
	fmt.Println("---- END RESULTS ----")
}

func runFunctionalTests(path string, only int, parallel bool) {
	cases, err := everybit.LoadTestCases(path)
	essentials.Must(err)
	log.Printf("loaded %d test cases from %s", len(cases), path)

	report := everybit.RunTestCases(cases, only, parallel)
	for _, failure := range report.Failures {
		log.Printf("FAIL: %s", failure)
	}
	fmt.Printf("passed %d/%d tests\n", report.Passed, report.Passed+report.Failed)
	if report.Failed > 0 {
		essentials.Die(report.Failed, "tests failed")
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s\n"+
		"\t -s Run a sample small (0.01s) rotation operation\n"+
		"\t -m Run a sample medium (0.1s) rotation operation\n"+
		"\t -l Run a sample large (1s) rotation operation\n"+
		"\t    (note: the -[s/m/l] options only test performance and NOT correctness.)\n"+
		"\t -t tests/default\tRun all tests in the testfile tests/default\n"+
		"\t -n 1 -t tests/default\tRun test 1 in the testfile tests/default\n",
		os.Args[0])
}
