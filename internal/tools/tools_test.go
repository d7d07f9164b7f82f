package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/wellness"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestAuth(t *testing.T, st *store.Store) *auth.Authenticator {
	t.Helper()
	return auth.New("admin-key", auth.NewMemoryStore(), &auth.StoreDirectory{Store: st}, zap.NewNop())
}

func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultJSON decodes a handler result into a generic map.
func resultJSON(t *testing.T, res *mcp.CallToolResult, err error) map[string]any {
	t.Helper()
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty result content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("result is not JSON: %v\n%s", err, text.Text)
	}
	return payload
}

func expectError(t *testing.T, payload map[string]any, errType string) {
	t.Helper()
	if payload["success"] != false {
		t.Fatalf("expected failure payload, got %v", payload)
	}
	if payload["error"] != errType {
		t.Fatalf("error type: got %v, want %s", payload["error"], errType)
	}
	if payload["message"] == nil || payload["message"] == "" {
		t.Fatal("failure payload missing message")
	}
}

func TestHandlersRejectAnonymousCalls(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	tool := &GetTasksTool{Store: st, Auth: a}

	res1, err1 := tool.Handle(context.Background(), makeReq(nil))
	payload := resultJSON(t, res1, err1)
	expectError(t, payload, "unauthorized")
}

func TestTaskToolsRoundTrip(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	save := &SaveTasksTool{Store: st, Auth: a}
	res2, err2 := save.Handle(ctx, makeReq(map[string]any{
		"user_id":    "user-1",
		"tasks_json": `[{"title":"ship release","quadrant":"HUHI","status":"in_progress"},{"title":"plan quarter","quadrant":"HULI"}]`,
	}))
	payload := resultJSON(t, res2, err2)
	if payload["success"] != true || payload["saved_count"] != float64(2) {
		t.Fatalf("save: %v", payload)
	}

	get := &GetTasksTool{Store: st, Auth: a}
	res3, err3 := get.Handle(ctx, makeReq(map[string]any{"user_id": "user-1"}))
	payload = resultJSON(t, res3, err3)
	if payload["count"] != float64(2) {
		t.Fatalf("get: %v", payload)
	}

	// Another user sees nothing.
	res4, err4 := get.Handle(ctx, makeReq(map[string]any{"user_id": "user-2"}))
	payload = resultJSON(t, res4, err4)
	if payload["count"] != float64(0) {
		t.Fatalf("cross-user leak: %v", payload)
	}
}

func TestSaveTasksValidation(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	save := &SaveTasksTool{Store: st, Auth: a}
	ctx := context.Background()

	res5, err5 := save.Handle(ctx, makeReq(map[string]any{
		"user_id":    "user-1",
		"tasks_json": `not json`,
	}))
	payload := resultJSON(t, res5, err5)
	expectError(t, payload, "validation_error")

	res6, err6 := save.Handle(ctx, makeReq(map[string]any{
		"user_id":    "user-1",
		"tasks_json": `[{"title":"x","quadrant":"NOPE"}]`,
	}))
	payload = resultJSON(t, res6, err6)
	expectError(t, payload, "validation_error")
}

func TestDailyDataTools(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	save := &SaveDailyDataTool{Store: st, Auth: a}
	res7, err7 := save.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1",
		"day":     float64(15), "month": float64(8), "year": float64(2026),
		"emoji":   "FOCUSED",
		"summary": "deep work day",
	}))
	payload := resultJSON(t, res7, err7)
	if payload["success"] != true {
		t.Fatalf("save: %v", payload)
	}

	// Bad mood tag.
	res8, err8 := save.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1",
		"day":     float64(15), "month": float64(8), "year": float64(2026),
		"emoji": "HAPPY",
	}))
	payload = resultJSON(t, res8, err8)
	expectError(t, payload, "validation_error")

	// Feb 30 does not exist.
	res9, err9 := save.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1",
		"day":     float64(30), "month": float64(2), "year": float64(2026),
		"emoji": "FOCUSED",
	}))
	payload = resultJSON(t, res9, err9)
	expectError(t, payload, "validation_error")

	get := &GetMonthlyDataTool{Store: st, Auth: a}
	res10, err10 := get.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "year": float64(2026), "month": float64(8),
	}))
	payload = resultJSON(t, res10, err10)
	if payload["count"] != float64(1) {
		t.Fatalf("get: %v", payload)
	}
}

func TestPomodoroTools(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	save := &SavePomodoroTool{Store: st, Auth: a}
	res11, err11 := save.Handle(ctx, makeReq(map[string]any{
		"user_id":        "user-1",
		"work_duration":  float64(25),
		"break_duration": float64(5),
	}))
	payload := resultJSON(t, res11, err11)
	if payload["success"] != true {
		t.Fatalf("save: %v", payload)
	}

	res12, err12 := save.Handle(ctx, makeReq(map[string]any{
		"user_id":        "user-1",
		"work_duration":  float64(0),
		"break_duration": float64(5),
	}))
	payload = resultJSON(t, res12, err12)
	expectError(t, payload, "validation_error")
}

func TestMockWearableTool(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	tool := &MockWearableTool{Auth: a}
	ctx := context.Background()

	res13, err13 := tool.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "date": "2026-08-23",
	}))
	payload := resultJSON(t, res13, err13)
	if payload["success"] != true || payload["mock"] != true {
		t.Fatalf("got %v", payload)
	}

	res14, err14 := tool.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "date": "23/08/2026",
	}))
	payload = resultJSON(t, res14, err14)
	expectError(t, payload, "validation_error")
}

func TestWearableIngestAndRecovery(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	reg := &RegisterDeviceTool{Store: st, Auth: a}
	res15, err15 := reg.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "device_id": "watch-1", "device_type": "smartwatch",
	}))
	payload := resultJSON(t, res15, err15)
	if payload["success"] != true {
		t.Fatalf("register: %v", payload)
	}
	res16, err16 := reg.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "device_id": "watch-1", "device_type": "smartwatch",
	}))
	payload = resultJSON(t, res16, err16)
	expectError(t, payload, "conflict")

	ingest := &IngestWearableTool{Store: st, Auth: a}
	res17, err17 := ingest.Handle(ctx, makeReq(map[string]any{
		"user_id":      "user-1",
		"device_id":    "watch-1",
		"date":         "2026-08-22",
		"metrics_json": `{"sleep":{"sleep_score":95,"duration_hours":8},"heart_rate":{"hrv_rmssd":40},"activity":{"active_minutes":65},"stress_recovery":{"stress_score":0.1}}`,
	}))
	payload = resultJSON(t, res17, err17)
	if payload["success"] != true {
		t.Fatalf("ingest: %v", payload)
	}

	rec := &RecoveryScoreTool{Store: st, Auth: a}
	res18, err18 := rec.Handle(ctx, makeReq(map[string]any{"user_id": "user-1"}))
	payload = resultJSON(t, res18, err18)
	if payload["success"] != true {
		t.Fatalf("recovery: %v", payload)
	}
	recovery, ok := payload["recovery"].(map[string]any)
	if !ok || recovery["recovery_level"] != "excellent" {
		t.Fatalf("recovery payload: %v", payload["recovery"])
	}

	// No data for a user without readings.
	res19, err19 := rec.Handle(ctx, makeReq(map[string]any{"user_id": "user-2"}))
	payload = resultJSON(t, res19, err19)
	expectError(t, payload, "not_found")
}

func TestBulkSaveTool(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	sessionID, err := st.CreateJournalSession(ctx, "user-1", "vent")
	if err != nil {
		t.Fatal(err)
	}

	tool := &BulkSaveTool{Saver: wellness.NewSaver(st, zap.NewNop()), Auth: a}
	analysisJSON := `{"summary":"rough week","emotions":["tired"],"stress_level":"high","tasks":[{"title":"rest day","priority":"urgent_important","suggested_due_days":2}],"pathways":[{"name":"sleep reset","duration_days":14}]}`

	res20, err20 := tool.Handle(ctx, makeReq(map[string]any{
		"user_id":         "user-1",
		"session_id":      sessionID,
		"mode":            "wellness",
		"safety_approved": true,
		"safety_score":    0.88,
		"analysis_json":   analysisJSON,
	}))
	payload := resultJSON(t, res20, err20)
	if payload["success"] != true {
		t.Fatalf("bulk save: %v", payload)
	}
	if payload["tasks_saved"] != float64(1) || payload["pathways_saved"] != float64(1) {
		t.Fatalf("counts: %v", payload)
	}

	// Mode and the safety verdict land in the session's analysis record.
	session, err := st.GetJournalSession(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	var attached wellness.Analysis
	if err := json.Unmarshal([]byte(session.Analysis), &attached); err != nil {
		t.Fatalf("session analysis is not valid JSON: %v", err)
	}
	if attached.Mode != "wellness" || !attached.SafetyApproved || attached.SafetyScore != 0.88 {
		t.Fatalf("provenance lost: mode=%q approved=%v score=%v",
			attached.Mode, attached.SafetyApproved, attached.SafetyScore)
	}

	// Foreign session is rejected without writing.
	res21, err21 := tool.Handle(ctx, makeReq(map[string]any{
		"user_id":       "intruder",
		"session_id":    sessionID,
		"analysis_json": analysisJSON,
	}))
	payload = resultJSON(t, res21, err21)
	expectError(t, payload, "unauthorized")

	// Unknown session.
	res22, err22 := tool.Handle(ctx, makeReq(map[string]any{
		"user_id":       "user-1",
		"session_id":    "no-such-session",
		"analysis_json": analysisJSON,
	}))
	payload = resultJSON(t, res22, err22)
	expectError(t, payload, "not_found")
}

func TestLoginTool(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err := st.CreateUser(ctx, store.User{
		UserID: "user-1", Username: "alice", Email: "alice@example.com", PasswordHash: string(hash),
	}); err != nil {
		t.Fatal(err)
	}

	tool := &LoginTool{Auth: a}
	res23, err23 := tool.Handle(ctx, makeReq(map[string]any{
		"identifier": "alice", "password": "hunter2",
	}))
	payload := resultJSON(t, res23, err23)
	if payload["success"] != true || payload["user_id"] != "user-1" {
		t.Fatalf("login: %v", payload)
	}
	if payload["session_token"] == "" || payload["api_key"] == "" {
		t.Fatalf("missing credentials: %v", payload)
	}

	// Wrong password and unknown user return the same generic message.
	res24, err24 := tool.Handle(ctx, makeReq(map[string]any{
		"identifier": "alice", "password": "nope",
	}))
	bad1 := resultJSON(t, res24, err24)
	res25, err25 := tool.Handle(ctx, makeReq(map[string]any{
		"identifier": "nobody", "password": "nope",
	}))
	bad2 := resultJSON(t, res25, err25)
	expectError(t, bad1, "login_failed")
	expectError(t, bad2, "login_failed")
	if bad1["message"] != bad2["message"] {
		t.Fatalf("login failures differ: %v vs %v", bad1["message"], bad2["message"])
	}
}

func TestKeyManagementTools(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	register := &RegisterKeyTool{Auth: a}
	res26, err26 := register.Handle(ctx, makeReq(map[string]any{"user_id": "user-1"}))
	payload := resultJSON(t, res26, err26)
	if payload["success"] != true {
		t.Fatalf("register: %v", payload)
	}
	key, _ := payload["api_key"].(string)
	if key == "" {
		t.Fatalf("no key returned: %v", payload)
	}

	// The key works as an identity for other tools.
	get := &GetTasksTool{Store: st, Auth: a}
	res27, err27 := get.Handle(ctx, makeReq(map[string]any{"api_key": key}))
	payload = resultJSON(t, res27, err27)
	if payload["success"] != true {
		t.Fatalf("key-based call: %v", payload)
	}

	list := &ListKeysTool{Auth: a}
	res28, err28 := list.Handle(ctx, makeReq(map[string]any{"user_id": "user-1"}))
	payload = resultJSON(t, res28, err28)
	keys, _ := payload["keys"].([]any)
	if len(keys) != 1 {
		t.Fatalf("list: %v", payload)
	}
	if masked, _ := keys[0].(string); masked == key {
		t.Fatal("list returned the raw key")
	}

	revoke := &RevokeKeyTool{Auth: a}
	res29, err29 := revoke.Handle(ctx, makeReq(map[string]any{"user_id": "user-1"}))
	payload = resultJSON(t, res29, err29)
	if payload["revoked_count"] != float64(1) {
		t.Fatalf("revoke: %v", payload)
	}

	// The revoked key no longer authorizes.
	res30, err30 := get.Handle(ctx, makeReq(map[string]any{"api_key": key}))
	payload = resultJSON(t, res30, err30)
	expectError(t, payload, "unauthorized")
}

func TestAdminKeyReachesAnyUser(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	save := &SaveTasksTool{Store: st, Auth: a}
	res31, err31 := save.Handle(ctx, makeReq(map[string]any{
		"user_id":    "user-9",
		"api_key":    "admin-key",
		"tasks_json": `[{"title":"x","quadrant":"HUHI"}]`,
	}))
	payload := resultJSON(t, res31, err31)
	if payload["success"] != true {
		t.Fatalf("admin save: %v", payload)
	}

	// Admin key with no subject fails.
	res32, err32 := save.Handle(ctx, makeReq(map[string]any{
		"api_key":    "admin-key",
		"tasks_json": `[]`,
	}))
	payload = resultJSON(t, res32, err32)
	expectError(t, payload, "unauthorized")
}

func TestSuggestionTools(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	task := &SaveTaskRecommendationTool{Store: st, Auth: a}
	res33, err33 := task.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "title": "take a walk", "priority": "urgent_not_important",
	}))
	payload := resultJSON(t, res33, err33)
	if payload["success"] != true || payload["task_id"] == "" {
		t.Fatalf("task rec: %v", payload)
	}

	res34, err34 := task.Handle(ctx, makeReq(map[string]any{"user_id": "user-1"}))
	payload = resultJSON(t, res34, err34)
	expectError(t, payload, "validation_error")

	summary := &SaveWellnessSummaryTool{Store: st, Auth: a}
	res35, err35 := summary.Handle(ctx, makeReq(map[string]any{
		"user_id":      "user-1",
		"summary_json": `{"summary":"hard week","emotions":["tired","anxious"],"stress_level":"high"}`,
	}))
	payload = resultJSON(t, res35, err35)
	if payload["success"] != true {
		t.Fatalf("summary: %v", payload)
	}
	if payload["mood"] != "OVERWHELMED" {
		t.Fatalf("stress mapping: got %v", payload["mood"])
	}

	summaries, err := st.RecentWellnessSummaries(ctx, "user-1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || len(summaries[0].Emotions) != 2 {
		t.Fatalf("summary lost: %+v", summaries)
	}

	// Today's mood entry was written alongside the summary.
	today := time.Now()
	entries, err := st.MonthlyEntries(ctx, "user-1", today.Year(), int(today.Month()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Mood != "OVERWHELMED" {
		t.Fatalf("daily entry not reflected: %+v", entries)
	}

	// Malformed payload is a validation error.
	res36, err36 := summary.Handle(ctx, makeReq(map[string]any{
		"user_id":      "user-1",
		"summary_json": "not json",
	}))
	payload = resultJSON(t, res36, err36)
	expectError(t, payload, "validation_error")
}

func TestStatsAndAnalysisTools(t *testing.T) {
	st := newTestStore(t)
	a := newTestAuth(t, st)
	ctx := context.Background()

	st.ReplaceTasks(ctx, "user-1", []store.Task{
		{Title: "a", Quadrant: store.QuadrantHUHI, Status: store.StatusCompleted},
		{Title: "b", Quadrant: store.QuadrantHULI, Status: store.StatusCreated},
	})
	st.UpsertDailyEntry(ctx, "user-1", store.DailyEntry{Day: 1, Month: 8, Year: 2026, Mood: store.MoodFocused})
	st.AddPomodoroSession(ctx, "user-1", store.PomodoroSession{
		WorkDuration: 25, BreakDuration: 5, Completed: true, Timestamp: "2026-08-01T10:00:00Z",
	})

	overview := &MonthlyOverviewTool{Store: st, Auth: a}
	res37, err37 := overview.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "year": float64(2026), "month": float64(8),
	}))
	payload := resultJSON(t, res37, err37)
	if payload["success"] != true {
		t.Fatalf("overview: %v", payload)
	}
	ov, _ := payload["overview"].(map[string]any)
	if ov["days_tracked"] != float64(1) || ov["total_tasks"] != float64(2) {
		t.Fatalf("overview content: %v", ov)
	}

	dist := &TaskDistributionTool{Store: st, Auth: a}
	res38, err38 := dist.Handle(ctx, makeReq(map[string]any{"user_id": "user-1"}))
	payload = resultJSON(t, res38, err38)
	if payload["success"] != true {
		t.Fatalf("distribution: %v", payload)
	}

	patterns := &StudyPatternsTool{Store: st, Auth: a}
	res39, err39 := patterns.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "year": float64(2026), "month": float64(8),
	}))
	payload = resultJSON(t, res39, err39)
	if payload["success"] != true {
		t.Fatalf("patterns: %v", payload)
	}

	stored := &StoredStudyPatternsTool{Store: st, Auth: a}
	res40, err40 := stored.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "year": float64(2026), "month": float64(8),
	}))
	payload = resultJSON(t, res40, err40)
	if payload["success"] != true || payload["analysis_id"] == nil {
		t.Fatalf("stored patterns: %v", payload)
	}

	// Month validation is shared across the month-scoped tools.
	res41, err41 := overview.Handle(ctx, makeReq(map[string]any{
		"user_id": "user-1", "year": float64(2026), "month": float64(13),
	}))
	payload = resultJSON(t, res41, err41)
	expectError(t, payload, "validation_error")
}
