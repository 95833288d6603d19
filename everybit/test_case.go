package everybit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/unixpickle/essentials"
	"sigs.k8s.io/yaml"
)

type StepKind int

const (
	StepInit StepKind = iota
	StepRotate
	StepExpect
)

// A Step is a single directive of a functional test.
type Step struct {
	Kind StepKind

	// Bits is the bit string for StepInit and StepExpect.
	Bits string

	// Offset, Length, and Amount are the arguments to
	// Rotate for StepRotate.
	Offset int
	Length int
	Amount int
}

// A TestCase is a numbered sequence of steps which builds a
// bit array, rotates it, and checks the results.
type TestCase struct {
	ID    int
	Steps []Step
}

// ReadTestCases parses the line-based test file format:
//
//	t <id>                  start test case <id>
//	n <bits>                replace the array with <bits>
//	r <offset> <len> <amt>  rotate a range
//	e <bits>                expect the array to equal <bits>
//
// Blank lines and lines starting with '#' are ignored.
func ReadTestCases(r io.Reader) ([]*TestCase, error) {
	var cases []*TestCase
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<24)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		ctx := fmt.Sprintf("line %d", lineNum)
		if fields[0] == "t" {
			ints, err := parseInts(fields[1:], 1)
			if err != nil {
				return nil, essentials.AddCtx(ctx, err)
			}
			cases = append(cases, &TestCase{ID: ints[0]})
			continue
		}
		if len(cases) == 0 {
			return nil, essentials.AddCtx(ctx, errors.New("directive before first test case"))
		}
		step, err := parseStep(fields)
		if err != nil {
			return nil, essentials.AddCtx(ctx, err)
		}
		tc := cases[len(cases)-1]
		tc.Steps = append(tc.Steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

func parseStep(fields []string) (Step, error) {
	switch fields[0] {
	case "n", "e":
		if len(fields) != 2 {
			return Step{}, fmt.Errorf("directive %q expects one bit string", fields[0])
		}
		if _, err := ParseBitArray(fields[1]); err != nil {
			return Step{}, err
		}
		kind := StepInit
		if fields[0] == "e" {
			kind = StepExpect
		}
		return Step{Kind: kind, Bits: fields[1]}, nil
	case "r":
		ints, err := parseInts(fields[1:], 3)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepRotate, Offset: ints[0], Length: ints[1], Amount: ints[2]}, nil
	default:
		return Step{}, fmt.Errorf("unknown directive %q", fields[0])
	}
}

func parseInts(fields []string, count int) ([]int, error) {
	if len(fields) != count {
		return nil, fmt.Errorf("expected %d integer arguments but got %d", count, len(fields))
	}
	res := make([]int, count)
	for i, f := range fields {
		x, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}

type yamlTestCase struct {
	ID    int        `json:"id"`
	Steps []yamlStep `json:"steps"`
}

type yamlStep struct {
	Init   *string `json:"init,omitempty"`
	Rotate []int   `json:"rotate,omitempty"`
	Expect *string `json:"expect,omitempty"`
}

// ReadTestCasesYAML decodes test cases from a YAML list such
// as:
//
//	- id: 0
//	  steps:
//	    - init: "10010110"
//	    - rotate: [0, 8, -1]
//	    - expect: "00101101"
func ReadTestCasesYAML(data []byte) ([]*TestCase, error) {
	var raw []yamlTestCase
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cases := make([]*TestCase, len(raw))
	for i, rc := range raw {
		tc := &TestCase{ID: rc.ID}
		for j, rs := range rc.Steps {
			ctx := fmt.Sprintf("test %d step %d", rc.ID, j)
			var fields []string
			switch {
			case rs.Init != nil:
				fields = []string{"n", *rs.Init}
			case rs.Expect != nil:
				fields = []string{"e", *rs.Expect}
			case rs.Rotate != nil:
				fields = []string{"r"}
				for _, x := range rs.Rotate {
					fields = append(fields, strconv.Itoa(x))
				}
			default:
				return nil, essentials.AddCtx(ctx, errors.New("empty step"))
			}
			step, err := parseStep(fields)
			if err != nil {
				return nil, essentials.AddCtx(ctx, err)
			}
			tc.Steps = append(tc.Steps, step)
		}
		cases[i] = tc
	}
	return cases, nil
}

// LoadTestCases reads a test file from disk.
//
// Files ending in ".zst" are decompressed first, and the
// remaining extension selects between the YAML format
// (".yaml" or ".yml") and the line format (anything else).
func LoadTestCases(path string) (cases []*TestCase, err error) {
	defer func() {
		if err != nil {
			err = essentials.AddCtx("load "+path, err)
		}
	}()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := io.Reader(f)
	name := path
	if strings.HasSuffix(name, ".zst") {
		d, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		r = d
		name = strings.TrimSuffix(name, ".zst")
	}

	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return ReadTestCasesYAML(data)
	default:
		return ReadTestCases(r)
	}
}

// A TestFailure describes the step at which a TestCase did
// not behave as expected.
type TestFailure struct {
	ID   int
	Step int

	// Expected and Actual are set for failed expectations.
	Expected string
	Actual   string

	// Err is set when the step could not be executed.
	Err error
}

func (t *TestFailure) Error() string {
	if t.Err != nil {
		return fmt.Sprintf("test %d step %d: %s", t.ID, t.Step, t.Err)
	}
	return fmt.Sprintf("test %d step %d: expected %s but got %s", t.ID, t.Step,
		t.Expected, t.Actual)
}

func (t *TestFailure) Unwrap() error {
	return t.Err
}

// Run executes the steps of the test case in order and
// returns a *TestFailure for the first step that fails.
//
// Out-of-range rotations are reported as failures rather
// than panics.
func (t *TestCase) Run() (err error) {
	var stepIdx int
	defer func() {
		if r := recover(); r != nil {
			rangeErr, ok := r.(*OutOfRangeError)
			if !ok {
				panic(r)
			}
			err = &TestFailure{ID: t.ID, Step: stepIdx, Err: rangeErr}
		}
	}()

	var arr *BitArray
	for i, step := range t.Steps {
		stepIdx = i
		if step.Kind != StepInit && arr == nil {
			return &TestFailure{ID: t.ID, Step: i, Err: errors.New("no bit array initialized")}
		}
		switch step.Kind {
		case StepInit:
			arr, err = ParseBitArray(step.Bits)
			if err != nil {
				return &TestFailure{ID: t.ID, Step: i, Err: err}
			}
		case StepRotate:
			arr.Rotate(step.Offset, step.Length, step.Amount)
		case StepExpect:
			if actual := arr.String(); actual != step.Bits {
				return &TestFailure{ID: t.ID, Step: i, Expected: step.Bits, Actual: actual}
			}
		}
	}
	return nil
}

// A TestReport summarizes a call to RunTestCases.
type TestReport struct {
	Passed   int
	Failed   int
	Failures []error
}

// RunTestCases runs every test case, or only the case with
// ID only when only is non-negative.
//
// If parallel is true, cases run on separate Goroutines;
// each case owns its own BitArray. Failures are reported in
// case order either way.
func RunTestCases(cases []*TestCase, only int, parallel bool) *TestReport {
	var selected []*TestCase
	for _, tc := range cases {
		if only < 0 || tc.ID == only {
			selected = append(selected, tc)
		}
	}
	results := make([]error, len(selected))
	run := func(i int) {
		results[i] = selected[i].Run()
	}
	if parallel {
		essentials.ConcurrentMap(0, len(selected), run)
	} else {
		for i := range selected {
			run(i)
		}
	}

	report := &TestReport{}
	for _, err := range results {
		if err != nil {
			report.Failed++
			report.Failures = append(report.Failures, err)
		} else {
			report.Passed++
		}
	}
	return report
}
