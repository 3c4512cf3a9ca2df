package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New("test")
	var out bytes.Buffer
	c.rootCmd.SetIn(strings.NewReader(stdin))
	c.rootCmd.SetOut(&out)
	c.rootCmd.SetErr(&out)
	c.rootCmd.SetArgs(append([]string{"-s"}, args...))
	err := c.Run()
	return out.String(), err
}

func TestAlignStdin(t *testing.T) {
	out, err := run(t, "la ||| the\nmaison ||| house\n", "align", "-i", "3", "-")
	if err != nil {
		t.Fatal(err)
	}
	if out != "0-0\n0-0\n" {
		t.Errorf("output = %q, want %q", out, "0-0\n0-0\n")
	}
}

func TestAlignOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(input, []byte("La ||| The\nMaison ||| House\n"), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "out.a")

	out, err := run(t, "", "align", "--lowercase", "-o", output, input)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing", out)
	}
	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "0-0\n0-0\n" {
		t.Errorf("file = %q, want %q", got, "0-0\n0-0\n")
	}
}

func TestAlignRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative iterations", []string{"align", "--iterations=-1", "-"}},
		{"unknown method", []string{"align", "--method", "viterbi", "-"}},
		{"missing separator", []string{"align", "-"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, "no separator\n", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEvaluateAlignmentsFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"toy.a": "0-0 1?1\n0-0\n",
		"sys.a": "0-0 1-1\n0-0\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := run(t, "", "evaluate", "--data-folder", dir, "--prefix", "toy",
		"--alignments", filepath.Join(dir, "sys.a"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Sentences: 2", "Precision = 1.000 (3/3)", "Recall = 1.000 (2/2)", "AER = 0.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("WORDALIGN_ITERATIONS", "7")
	t.Setenv("WORDALIGN_DATA", "/corpora")
	t.Setenv("WORDALIGN_SENTENCES", "not-a-number")

	env := loadEnv(filepath.Join(t.TempDir(), "missing.env"))
	if env.iterations != 7 {
		t.Errorf("iterations = %d, want 7", env.iterations)
	}
	if env.data.Folder != "/corpora" {
		t.Errorf("data folder = %q, want /corpora", env.data.Folder)
	}
	if env.data.Sentences != 0 {
		t.Errorf("sentences = %d, want default 0", env.data.Sentences)
	}
	if env.method != "direct" {
		t.Errorf("method = %q, want direct", env.method)
	}
	if env.loaded != "" {
		t.Errorf("loaded = %q, want empty", env.loaded)
	}
}

func TestLoadEnvFile(t *testing.T) {
	// Registered so the variable is restored after godotenv sets it.
	t.Setenv("WORDALIGN_METEOR_JAR", "")
	if err := os.Unsetenv("WORDALIGN_METEOR_JAR"); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WORDALIGN_PREFIX", "europarl")

	path := filepath.Join(t.TempDir(), ".env")
	content := "WORDALIGN_METEOR_JAR=/opt/meteor.jar\nWORDALIGN_PREFIX=ignored\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env := loadEnv(path)
	if env.loaded != path {
		t.Errorf("loaded = %q, want %q", env.loaded, path)
	}
	if env.meteorJar != "/opt/meteor.jar" {
		t.Errorf("meteor jar = %q, want /opt/meteor.jar", env.meteorJar)
	}
	if env.data.Prefix != "europarl" {
		t.Errorf("prefix = %q, want europarl (environment wins over the file)", env.data.Prefix)
	}
}
