// seed_tasks.go — standalone script to parse TODO.md and run it through the Triage analyze API.
//
// Lines look like:
//
//	- [ ] Ship release notes | due:2026-03-05 | hours:2 | importance:7 | deps:1,3
//
// Usage:
//
//	go run scripts/seed_tasks.go -todo /path/to/TODO.md -api http://localhost:8700 -strategy balanced
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type task struct {
	ID             int        `json:"id,omitempty"`
	Title          string     `json:"title"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours float64    `json:"estimated_hours"`
	Importance     int        `json:"importance"`
	Dependencies   []int      `json:"dependencies,omitempty"`
}

func main() {
	todoPath := flag.String("todo", "TODO.md", "path to TODO.md file")
	apiURL := flag.String("api", "http://localhost:8700", "Triage API base URL")
	strategy := flag.String("strategy", "", "scoring strategy (empty uses the server default)")
	dryRun := flag.Bool("dry-run", false, "print parsed tasks without posting")
	flag.Parse()

	f, err := os.Open(*todoPath)
	if err != nil {
		log.Fatalf("open %s: %v", *todoPath, err)
	}
	defer f.Close()

	var tasks []task
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "- [ ]") {
			continue
		}
		t, err := parseLine(strings.TrimSpace(strings.TrimPrefix(line, "- [ ]")))
		if err != nil {
			log.Printf("skipping line: %v", err)
			continue
		}
		t.ID = len(tasks) + 1
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read %s: %v", *todoPath, err)
	}
	if len(tasks) == 0 {
		log.Fatal("no open tasks found")
	}

	if *dryRun {
		out, _ := json.MarshalIndent(tasks, "", "  ")
		fmt.Println(string(out))
		return
	}

	body, _ := json.Marshal(map[string]interface{}{
		"tasks":    tasks,
		"strategy": *strategy,
	})
	resp, err := http.Post(*apiURL+"/api/v1/tasks/analyze", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("post analyze: %v", err)
	}
	defer resp.Body.Close()

	var result struct {
		Strategy     string `json:"strategy"`
		CycleWarning []int  `json:"cycle_warning"`
		Tasks        []struct {
			ID        int    `json:"id"`
			Title     string `json:"title"`
			Breakdown struct {
				PriorityScore float64 `json:"priority_score"`
				PriorityLevel string  `json:"priority_level"`
			} `json:"breakdown"`
		} `json:"tasks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("decode response (%s): %v", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("analyze failed: %s", resp.Status)
	}

	fmt.Printf("strategy: %s\n", result.Strategy)
	if len(result.CycleWarning) > 0 {
		fmt.Printf("circular dependencies: %v\n", result.CycleWarning)
	}
	for i, t := range result.Tasks {
		fmt.Printf("%2d. [%6.2f %-6s] %s\n", i+1, t.Breakdown.PriorityScore, t.Breakdown.PriorityLevel, t.Title)
	}
}

func parseLine(line string) (task, error) {
	parts := strings.Split(line, "|")
	t := task{
		Title:          strings.TrimSpace(parts[0]),
		EstimatedHours: 1,
		Importance:     5,
	}
	if t.Title == "" {
		return t, fmt.Errorf("empty title in %q", line)
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "due":
			d, err := time.Parse("2006-01-02", kv[1])
			if err != nil {
				return t, fmt.Errorf("bad due date %q: %w", kv[1], err)
			}
			t.DueDate = &d
		case "hours":
			h, err := strconv.ParseFloat(kv[1], 64)
			if err != nil {
				return t, fmt.Errorf("bad hours %q: %w", kv[1], err)
			}
			t.EstimatedHours = h
		case "importance":
			n, err := strconv.Atoi(kv[1])
			if err != nil {
				return t, fmt.Errorf("bad importance %q: %w", kv[1], err)
			}
			t.Importance = n
		case "deps":
			for _, s := range strings.Split(kv[1], ",") {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil {
					return t, fmt.Errorf("bad dep %q: %w", s, err)
				}
				t.Dependencies = append(t.Dependencies, n)
			}
		}
	}
	return t, nil
}
