// Command shadow_compare replays read requests against the legacy backend and
// this service and reports responses that differ.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// target is one request to replay. Unordered compares top-level arrays
// regardless of element order.
type target struct {
	Method    string `json:"method"`
	Path      string `json:"path"`
	Role      string `json:"role"`
	Critical  bool   `json:"critical"`
	Unordered bool   `json:"unordered"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type result struct {
	Target        target
	LegacyStatus  int
	GoStatus      int
	StatusMatch   bool
	BodyMatch     bool
	Err           error
	GoLatency     time.Duration
	LegacyLatency time.Duration
}

func (r result) diff() bool {
	return r.Err != nil || !r.StatusMatch || !r.BodyMatch
}

// defaultTargets covers the read endpoints shared by both backends.
func defaultTargets(studentID string) []target {
	targets := []target{
		{Method: http.MethodGet, Path: "/api/health", Critical: true},
		{Method: http.MethodGet, Path: "/api/students", Critical: true, Unordered: true},
		{Method: http.MethodGet, Path: "/api/courses", Critical: true, Unordered: true},
		{Method: http.MethodGet, Path: "/api/absences", Critical: true, Unordered: true},
		{Method: http.MethodGet, Path: "/api/users", Unordered: true},
		{Method: http.MethodGet, Path: "/api/does-not-exist", Critical: true},
	}
	if studentID != "" {
		targets = append(targets,
			target{Method: http.MethodGet, Path: "/api/students/" + studentID, Critical: true},
			target{Method: http.MethodGet, Path: "/api/absences/student/" + studentID, Critical: true, Unordered: true},
		)
	}
	return targets
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		studentID   string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON targets file; defaults to the built-in read endpoints")
	flag.StringVar(&studentID, "student", "", "Student ID used for per-student targets")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	logr, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer logr.Sync() //nolint:errcheck

	targets := defaultTargets(studentID)
	if targetsPath != "" {
		targets, err = loadTargets(targetsPath)
		if err != nil {
			logr.Fatal("failed to load targets", zap.String("path", targetsPath), zap.Error(err))
		}
	}

	client := &http.Client{Timeout: timeout}
	var breaking, optional int
	results := make([]result, 0, len(targets))
	for _, t := range targets {
		res := compare(client, goBase, legacyBase, t)
		if res.diff() {
			if t.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(os.Stdout, results)
	logr.Info("shadow compare finished", zap.Int("breaking", breaking), zap.Int("optional", optional))
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compare(client *http.Client, goBase, legacyBase string, t target) result {
	res := result{Target: t}

	goStatus, goBody, goLatency, err := fetch(client, goBase, t)
	if err != nil {
		res.Err = fmt.Errorf("go request failed: %w", err)
		return res
	}
	legacyStatus, legacyBody, legacyLatency, err := fetch(client, legacyBase, t)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}

	res.GoStatus, res.LegacyStatus = goStatus, legacyStatus
	res.GoLatency, res.LegacyLatency = goLatency, legacyLatency
	res.StatusMatch = goStatus == legacyStatus
	res.BodyMatch = bodiesEqual(goBody, legacyBody, t.Unordered)
	return res
}

func fetch(client *http.Client, base string, t target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(t.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := t.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	if t.Role != "" {
		req.Header.Set("X-User-Role", t.Role)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// bodiesEqual compares two payloads as JSON when both decode, ignoring
// integer/float representation. Unordered top-level arrays are sorted by
// their "id" field first.
func bodiesEqual(a, b []byte, unordered bool) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	aj, bj = normalize(aj), normalize(bj)
	if unordered {
		sortByID(aj)
		sortByID(bj)
	}
	return reflect.DeepEqual(aj, bj)
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	default:
		return v
	}
}

func sortByID(v interface{}) {
	items, ok := v.([]interface{})
	if !ok {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return fmt.Sprint(idOf(items[i])) < fmt.Sprint(idOf(items[j]))
	})
}

func idOf(v interface{}) interface{} {
	if obj, ok := v.(map[string]interface{}); ok {
		return obj["id"]
	}
	return v
}

func printReport(w io.Writer, results []result) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "=====================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Err != nil:
			status = "ERROR"
		case res.diff():
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Err != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Err)
			continue
		}
		fmt.Fprintf(w, "  Go: %d (%s) | Legacy: %d (%s)\n", res.GoStatus, res.GoLatency, res.LegacyStatus, res.LegacyLatency)
		fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
