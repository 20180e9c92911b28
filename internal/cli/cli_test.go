package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const questionsJSON = `{"questions":[
 {"question":"What is 2+2?","options":["3","4","5","6"],"correct_answer":"4","difficulty":"easy","category":"Math"},
 {"question":"Capital of France?","options":["London","Berlin","Paris","Madrid"],"correct_answer":"Paris","difficulty":"medium","category":"Geography"}
]}`

func writeConfig(t *testing.T) string {
	t.Helper()
	return writeConfigWith(t, "storage:\n  backend: memory\n")
}

// writeConfigWith writes a question document and a config pointing at it, plus extra YAML.
func writeConfigWith(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	questions := filepath.Join(dir, "questions.json")
	if err := os.WriteFile(questions, []byte(questionsJSON), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	cfg := "log:\n  level: error\nquestions:\n  path: " + questions + "\n" + extra
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "", "categories", "--config", writeConfig(t))
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	for _, want := range []string{"Geography", "Math", "easy", "medium"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayCommandSkipsThroughGame(t *testing.T) {
	out, err := run(t, "\ns\n\nq\n", "play", "--config", writeConfig(t), "--questions", "1", "--timer", "0", "--player", "Ann")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	for _, want := range []string{"Question 1 of 1", "Quiz Completed!", "Final Score: 0", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "New High Score!") {
		t.Fatalf("a zero score must not qualify:\n%s", out)
	}
}

func TestPlayCommandReportsArabic(t *testing.T) {
	out, err := run(t, "q\n", "play", "--config", writeConfig(t), "--lang", "ar")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "سيد الاختبار") {
		t.Fatalf("expected arabic title:\n%s", out)
	}
}

func TestStatsListsEveryPlayer(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfigWith(t, "storage:\n  backend: file\n  scores: "+filepath.Join(dir, "scores.csv")+
		"\n  profiles: "+filepath.Join(dir, "profiles.json")+"\n")

	out, err := run(t, "", "stats", "--config", cfg)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "No player statistics yet.") {
		t.Fatalf("expected empty listing:\n%s", out)
	}

	for _, player := range []string{"Ann", "Bob"} {
		if _, err := run(t, "\ns\n\nq\n", "play", "--config", cfg, "--questions", "1", "--timer", "0", "--player", player); err != nil {
			t.Fatalf("play %s: %v", player, err)
		}
	}
	out, err = run(t, "", "stats", "--config", cfg)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	ann, bob := strings.Index(out, "Statistics for Ann"), strings.Index(out, "Statistics for Bob")
	if ann < 0 || bob < ann {
		t.Fatalf("expected Ann then Bob:\n%s", out)
	}
	if !strings.Contains(out, "Games Played: 1") {
		t.Fatalf("expected one game each:\n%s", out)
	}
}

func TestMissingQuestionSourceFails(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	data := "questions:\n  path: " + filepath.Join(dir, "absent.json") + "\nstorage:\n  backend: memory\n"
	if err := os.WriteFile(cfg, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := run(t, "", "scores", "--config", cfg); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestImportCommandWritesDocument(t *testing.T) {
	dir := t.TempDir()
	book := excelize.NewFile()
	rows := [][]interface{}{
		{"Question", "Option 1", "Option 2", "Option 3", "Option 4", "Correct", "Difficulty", "Category"},
		{"Largest ocean?", "Atlantic", "Indian", "Pacific", "Arctic", "Pacific", "easy", "Geography"},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := book.SetSheetRow("Sheet1", cell, &rows[i]); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	src := filepath.Join(dir, "questions.xlsx")
	if err := book.SaveAs(src); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = book.Close()

	dst := filepath.Join(dir, "questions.yaml")
	out, err := run(t, "", "import", src, dst, "--config", filepath.Join(dir, "none.yaml"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 1 questions") {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if !strings.Contains(string(data), "Largest ocean?") {
		t.Fatalf("document missing question:\n%s", data)
	}
}
