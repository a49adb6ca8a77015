// Package filetest implements golden-file helpers: each source file under a
// test directory has its expected outputs stored next to each other in a
// result directory, one file per output kind.
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var testUpdateAllTests = flag.Bool("test.update-all-tests", false, "If set, sets all test.update-*-tests.")

// Golden file extensions, appended to the name of the source file.
const (
	OutputExt = ".want"
	ErrorsExt = ".err"
)

// SourceFiles returns the regular files in dir with the specified extension,
// or all regular files if ext is empty.
func SourceFiles(t *testing.T, dir, ext string) []os.FileInfo {
	t.Helper()

	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	res := make([]os.FileInfo, 0, len(dents))
	for _, dent := range dents {
		if !dent.Type().IsRegular() {
			continue
		}
		if ext != "" && filepath.Ext(dent.Name()) != ext {
			continue
		}
		fi, err := dent.Info()
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, fi)
	}
	if len(res) == 0 {
		t.Fatalf("no %q source file in %s", ext, dir)
	}
	return res
}

// DiffOutput compares output with the golden output file of fi in resultDir,
// or rewrites that file if updateFlag is set.
func DiffOutput(t *testing.T, fi os.FileInfo, output, resultDir string, updateFlag *bool) {
	t.Helper()
	DiffCustom(t, fi, "output", OutputExt, output, resultDir, updateFlag)
}

// DiffErrors compares errors with the golden errors file of fi in resultDir,
// or rewrites that file if updateFlag is set. A missing golden file means no
// error is expected.
func DiffErrors(t *testing.T, fi os.FileInfo, errors, resultDir string, updateFlag *bool) {
	t.Helper()
	DiffCustom(t, fi, "errors", ErrorsExt, errors, resultDir, updateFlag)
}

// DiffCustom is the general form of DiffOutput and DiffErrors. The label is
// used in the test logs and ext is the golden file extension, including the
// leading dot. When updating, an empty output removes the golden file instead
// of writing an empty one.
func DiffCustom(t *testing.T, fi os.FileInfo, label, ext, output, resultDir string, updateFlag *bool) {
	t.Helper()

	goldFile := filepath.Join(resultDir, fi.Name()+ext)
	if *updateFlag || *testUpdateAllTests {
		update(t, goldFile, output)
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if testing.Verbose() {
		t.Logf("got %s:\n%s\n", label, output)
	}
	if patch := diff.Diff(want, output); patch != "" {
		if testing.Verbose() {
			t.Logf("want %s:\n%s\n", label, want)
		}
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}

func update(t *testing.T, goldFile, output string) {
	t.Helper()

	if output == "" {
		if err := os.Remove(goldFile); err != nil && !os.IsNotExist(err) {
			t.Fatal(err)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(goldFile), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(goldFile, []byte(output), 0600); err != nil {
		t.Fatal(err)
	}
}
