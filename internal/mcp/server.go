// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task board read-only to AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// BoardReader gives read access to the current board.
type BoardReader interface {
	Snapshot() models.Board
}

// Server wraps the board services and exposes them as MCP tools. None of
// the tools mutate the board.
type Server struct {
	server      *gomcp.Server
	board       BoardReader
	metricsCalc observability.MetricsCalculator
	alertEngine observability.AlertEngine
}

// NewServer creates a new MCP server. metricsCalc and alertEngine may be
// nil, in which case the matching tools report an error.
func NewServer(board BoardReader, metricsCalc observability.MetricsCalculator, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		board:       board,
		metricsCalc: metricsCalc,
		alertEngine: alertEngine,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "tb", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run serves over stdio, blocking until the client disconnects or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type getBoardInput struct {
	Column string `json:"column,omitempty" jsonschema:"limit the result to one column (planned, in progress, done)"`
}

type taskOutput struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Date   string `json:"date"`
	Effort string `json:"effort"`
	Column string `json:"column"`
	Row    int    `json:"row"`
}

type columnOutput struct {
	Name  string       `json:"name"`
	Count int          `json:"count"`
	Tasks []taskOutput `json:"tasks"`
}

type getBoardOutput struct {
	Columns []columnOutput `json:"columns"`
	Total   int            `json:"total"`
}

type getTaskInput struct {
	TaskID int `json:"task_id" jsonschema:"the numeric task ID shown by tb list"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	TasksCreated   int            `json:"tasks_created"`
	TasksEdited    int            `json:"tasks_edited"`
	TasksRemoved   int            `json:"tasks_removed"`
	TasksMoved     int            `json:"tasks_moved"`
	TasksCompleted int            `json:"tasks_completed"`
	MovesInto      map[string]int `json:"moves_into"`
	TasksByColumn  map[string]int `json:"tasks_by_column"`
	EventCount     int            `json:"event_count"`
	OldestEvent    string         `json:"oldest_event,omitempty"`
	NewestEvent    string         `json:"newest_event,omitempty"`
}

type getAlertsInput struct{}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_board",
		Description: "Get the task board: the planned, in progress and done columns with their tasks in display order.",
	}, s.handleGetBoard)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get one task by ID, including the column and row it currently occupies.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get board activity metrics from the event log: tasks created, edited, removed, moved and completed.",
	}, s.handleGetMetrics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active alerts (work-in-progress limit, planned column size, stale tasks).",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) handleGetBoard(_ context.Context, _ *gomcp.CallToolRequest, input getBoardInput) (*gomcp.CallToolResult, getBoardOutput, error) {
	columns := models.AllColumns()
	if input.Column != "" {
		col, err := models.ParseColumn(input.Column)
		if err != nil {
			return errorResult(err.Error()), getBoardOutput{Columns: []columnOutput{}}, nil
		}
		columns = []models.Column{col}
	}

	board := s.board.Snapshot()
	out := getBoardOutput{Columns: make([]columnOutput, 0, len(columns))}
	for _, col := range columns {
		tasks := board.Column(col)
		co := columnOutput{
			Name:  col.String(),
			Count: len(tasks),
			Tasks: make([]taskOutput, len(tasks)),
		}
		for row, t := range tasks {
			co.Tasks[row] = taskToOutput(t, col, row)
		}
		out.Columns = append(out.Columns, co)
		out.Total += co.Count
	}
	return nil, out, nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input getTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID <= 0 {
		return errorResult("task_id must be a positive integer"), taskOutput{}, nil
	}

	board := s.board.Snapshot()
	for _, col := range models.AllColumns() {
		for row, t := range board.Column(col) {
			if t.ID == input.TaskID {
				return nil, taskToOutput(t, col, row), nil
			}
		}
	}
	return errorResult(fmt.Sprintf("task %d not found", input.TaskID)), taskOutput{}, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := observability.ParseSince(sinceStr, time.Now().UTC())
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := emptyMetricsOutput()
	out.TasksCreated = metrics.TasksCreated
	out.TasksEdited = metrics.TasksEdited
	out.TasksRemoved = metrics.TasksRemoved
	out.TasksMoved = metrics.TasksMoved
	out.TasksCompleted = metrics.TasksCompleted
	out.EventCount = metrics.EventCount
	for k, v := range metrics.MovesInto {
		out.MovesInto[k] = v
	}
	for k, v := range metrics.TasksByColumn {
		out.TasksByColumn[k] = v
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available"), getAlertsOutput{Alerts: []alertOutput{}}, nil
	}

	alerts, err := s.alertEngine.Evaluate()
	if err != nil {
		return errorResult(fmt.Sprintf("evaluating alerts: %s", err)), getAlertsOutput{Alerts: []alertOutput{}}, nil
	}

	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}

	return nil, out, nil
}

// --- Helpers ---

func taskToOutput(t models.Task, col models.Column, row int) taskOutput {
	return taskOutput{
		ID:     t.ID,
		Label:  t.Label,
		Date:   t.Date,
		Effort: t.Effort,
		Column: col.String(),
		Row:    row,
	}
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{
		MovesInto:     make(map[string]int),
		TasksByColumn: make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
