package listing

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kagglekit/kagglectl/internal/project"
)

func TestRunItems_NewestFirstWithStatus(t *testing.T) {
	records := []project.RunRecord{
		{Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), URL: "https://service.example/code/a/one"},
		{Timestamp: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), URL: "https://service.example/code/a/two"},
	}

	items := RunItems(records, project.RunStatusPending)
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Ref != "https://service.example/code/a/two" {
		t.Errorf("Expected newest first, got %s", items[0].Ref)
	}
	if items[0].Detail != "pending" {
		t.Errorf("Expected newest run pending, got %s", items[0].Detail)
	}
	if items[1].Detail != "complete" {
		t.Errorf("Expected older run complete, got %s", items[1].Detail)
	}
}

func TestKernelItems(t *testing.T) {
	out := "ref,title,author,lastRunTime,totalVotes\n" +
		"bob/my-run,My Run,Bob,2024-05-01 10:00:00,3\n"

	items, err := KernelItems(out)
	if err != nil {
		t.Fatalf("KernelItems failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Kind != KindKernel || items[0].Ref != "bob/my-run" {
		t.Errorf("Unexpected item %+v", items[0])
	}
	if items[0].Detail != "2024-05-01 10:00:00" {
		t.Errorf("Expected lastRunTime detail, got %q", items[0].Detail)
	}
}

func TestDatasetItems_QuotedTitle(t *testing.T) {
	out := "ref,title,size,lastUpdated\n" +
		`alice/iris,"Iris, cleaned",16KB,2024-01-01` + "\n"

	items, err := DatasetItems(out)
	if err != nil {
		t.Fatalf("DatasetItems failed: %v", err)
	}
	if items[0].Title != "Iris, cleaned" {
		t.Errorf("Expected quoted title preserved, got %q", items[0].Title)
	}
	if items[0].Detail != "16KB" {
		t.Errorf("Expected size detail, got %q", items[0].Detail)
	}
}

func TestCompetitionItems(t *testing.T) {
	out := "ref,deadline,category,reward,teamCount,userHasEntered\n" +
		"titanic,2030-01-01,Getting Started,Knowledge,10000,False\n"

	items, err := CompetitionItems(out)
	if err != nil {
		t.Fatalf("CompetitionItems failed: %v", err)
	}
	if items[0].Kind != KindCompetition || items[0].Ref != "titanic" {
		t.Errorf("Unexpected item %+v", items[0])
	}
	if !strings.Contains(items[0].Detail, "2030-01-01") {
		t.Errorf("Expected deadline in detail, got %q", items[0].Detail)
	}
}

func TestKernelItems_NoHeader(t *testing.T) {
	if _, err := KernelItems("garbage output"); err == nil {
		t.Error("Expected error for missing header")
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, nil)
	if !strings.Contains(buf.String(), "nothing to show") {
		t.Errorf("Expected placeholder, got %q", buf.String())
	}
}

func TestRender_MixedKinds(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []Item{
		{Kind: KindDataset, Ref: "alice/iris", Title: "Iris", Detail: "16KB"},
		{Kind: KindRun, Ref: "https://service.example/code/a/b", Title: "2024-05-01 10:00:00", Detail: "pending"},
	})

	out := buf.String()
	if !strings.Contains(out, "alice/iris") {
		t.Errorf("Expected dataset row, got %q", out)
	}
	if !strings.Contains(out, "pending") {
		t.Errorf("Expected run status, got %q", out)
	}
}
