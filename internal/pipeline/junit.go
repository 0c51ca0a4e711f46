package pipeline

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"sort"
)

// JUnit report structures. Inputs may use either <testsuites> or a bare
// <testsuite> root; the merged output is always a single <testsuites>.

type junitDocument struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Errors   int          `xml:"errors,attr"`
	Skipped  int          `xml:"skipped,attr"`
	Time     float64      `xml:"time,attr"`
	Suites   []JUnitSuite `xml:"testsuite"`
}

// JUnitSuite is one test suite, typically one tox environment.
type JUnitSuite struct {
	Name      string      `xml:"name,attr"`
	Tests     int         `xml:"tests,attr"`
	Failures  int         `xml:"failures,attr"`
	Errors    int         `xml:"errors,attr"`
	Skipped   int         `xml:"skipped,attr"`
	Time      float64     `xml:"time,attr"`
	Timestamp string      `xml:"timestamp,attr,omitempty"`
	Cases     []JUnitCase `xml:"testcase"`
}

// JUnitCase is one test case. Body carries failure/error/skipped children
// through the merge verbatim.
type JUnitCase struct {
	Name      string  `xml:"name,attr"`
	Classname string  `xml:"classname,attr,omitempty"`
	Time      float64 `xml:"time,attr"`
	Body      string  `xml:",innerxml"`
}

// JUnitSummary totals a merged report.
type JUnitSummary struct {
	SuiteCount int
	Tests      int
	Failures   int
	Errors     int
	Skipped    int
}

// Failed reports whether any test failed or errored.
func (s JUnitSummary) Failed() bool {
	return s.Failures > 0 || s.Errors > 0
}

// MergeJUnit reads the given per-environment report files, merges their
// suites into a single document sorted by suite name, and writes it to
// outPath.
func MergeJUnit(inputs []string, outPath string) (*JUnitSummary, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no junit reports to merge")
	}

	var suites []JUnitSuite
	for _, path := range inputs {
		parsed, err := parseJUnitFile(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, parsed...)
	}
	sort.SliceStable(suites, func(i, j int) bool { return suites[i].Name < suites[j].Name })

	doc := junitDocument{Suites: suites}
	summary := &JUnitSummary{SuiteCount: len(suites)}
	for _, s := range suites {
		doc.Tests += s.Tests
		doc.Failures += s.Failures
		doc.Errors += s.Errors
		doc.Skipped += s.Skipped
		doc.Time += s.Time
	}
	summary.Tests = doc.Tests
	summary.Failures = doc.Failures
	summary.Errors = doc.Errors
	summary.Skipped = doc.Skipped

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling merged report: %w", err)
	}
	data := append([]byte(xml.Header), out...)
	data = append(data, '\n')

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return nil, fmt.Errorf("writing merged report %s: %w", outPath, err)
	}
	return summary, nil
}

// parseJUnitFile reads one report file and returns its suites, accepting
// both root element forms.
func parseJUnitFile(path string) ([]JUnitSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading junit report %s: %w", path, err)
	}

	root, err := rootElement(data)
	if err != nil {
		return nil, fmt.Errorf("parsing junit report %s: %w", path, err)
	}

	switch root {
	case "testsuites":
		var doc junitDocument
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing junit report %s: %w", path, err)
		}
		return doc.Suites, nil
	case "testsuite":
		var suite JUnitSuite
		if err := xml.Unmarshal(data, &suite); err != nil {
			return nil, fmt.Errorf("parsing junit report %s: %w", path, err)
		}
		return []JUnitSuite{suite}, nil
	default:
		return nil, fmt.Errorf("junit report %s: unexpected root element <%s>", path, root)
	}
}

// rootElement returns the name of the document's first element.
func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}
