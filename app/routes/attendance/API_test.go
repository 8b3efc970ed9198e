package attendance

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	app := fiber.New()
	SetupAttendanceRoutes(app, db)
	return app, mock
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal body %q: %v", raw, err)
	}
	return body
}

func attendanceRow(id, studentID, subjectID int, date string, status string, inserted bool) *sqlmock.Rows {
	day, _ := time.Parse("2006-01-02", date)
	return sqlmock.NewRows([]string{"id", "student_id", "subject_id", "date", "status", "inserted"}).
		AddRow(id, studentID, subjectID, day, status, inserted)
}

func TestRecordAttendanceMissingField(t *testing.T) {
	app, mock := newTestApp(t)

	resp := postJSON(t, app, "/api/attendance/record", map[string]any{
		"studentId": 1,
		"subjectId": 2,
		"status":    "present",
	})

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Champs manquants" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database calls: %v", err)
	}
}

// A zero id or empty string is treated like an absent field on the
// single-record path.
func TestRecordAttendanceZeroIDRejected(t *testing.T) {
	app, mock := newTestApp(t)

	resp := postJSON(t, app, "/api/attendance/record", map[string]any{
		"studentId": 0,
		"subjectId": 2,
		"date":      "2025-03-10",
		"status":    "present",
	})

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Champs manquants" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database calls: %v", err)
	}
}

func TestRecordAttendanceInvalidStatus(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/attendance/record", map[string]any{
		"studentId": 1,
		"subjectId": 2,
		"date":      "2025-03-10",
		"status":    "vacances",
	})

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Statut invalide" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestRecordAttendanceInsertAndUpdateMessages(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(1, 2, "2025-03-10", "present").
		WillReturnRows(attendanceRow(10, 1, 2, "2025-03-10", "present", true))
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(1, 2, "2025-03-10", "late").
		WillReturnRows(attendanceRow(10, 1, 2, "2025-03-10", "late", false))

	first := postJSON(t, app, "/api/attendance/record", map[string]any{
		"studentId": 1, "subjectId": 2, "date": "2025-03-10", "status": "present",
	})
	if first.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", first.StatusCode)
	}
	if body := decodeBody(t, first); body["message"] != "Présence enregistrée avec succès" {
		t.Errorf("message = %q", body["message"])
	}

	second := postJSON(t, app, "/api/attendance/record", map[string]any{
		"studentId": 1, "subjectId": 2, "date": "2025-03-10", "status": "late",
	})
	if second.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", second.StatusCode)
	}
	body := decodeBody(t, second)
	if body["message"] != "Présence mise à jour avec succès" {
		t.Errorf("message = %q", body["message"])
	}
	record, ok := body["attendance"].(map[string]any)
	if !ok {
		t.Fatalf("attendance = %v", body["attendance"])
	}
	if record["status"] != "late" {
		t.Errorf("status = %v, want late", record["status"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBulkRecordEmptyBatch(t *testing.T) {
	app, mock := newTestApp(t)

	resp := postJSON(t, app, "/api/attendance/bulk-record", map[string]any{
		"records": []any{},
	})

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Données invalides" {
		t.Errorf("error = %q", body["error"])
	}
	// No transaction may be opened for an empty batch.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database calls: %v", err)
	}
}

// A records value of the wrong type is rejected like an empty batch,
// not as malformed JSON.
func TestBulkRecordNonArrayRecords(t *testing.T) {
	app, mock := newTestApp(t)

	resp := postJSON(t, app, "/api/attendance/bulk-record", map[string]any{
		"records": 123,
	})

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Données invalides" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database calls: %v", err)
	}
}

func TestBulkRecordCommitsWholeBatch(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(1, 2, "2025-03-10", "present").
		WillReturnRows(attendanceRow(10, 1, 2, "2025-03-10", "present", true))
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(3, 2, "2025-03-10", "absent").
		WillReturnRows(attendanceRow(11, 3, 2, "2025-03-10", "absent", true))
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(4, 2, "2025-03-10", "late").
		WillReturnRows(attendanceRow(12, 4, 2, "2025-03-10", "late", false))
	mock.ExpectCommit()

	resp := postJSON(t, app, "/api/attendance/bulk-record", map[string]any{
		"records": []map[string]any{
			{"studentId": 1, "subjectId": 2, "date": "2025-03-10", "status": "present"},
			{"studentId": 3, "subjectId": 2, "date": "2025-03-10", "status": "absent"},
			{"studentId": 4, "subjectId": 2, "date": "2025-03-10", "status": "late"},
		},
	})

	if resp.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["message"] != "Présences enregistrées avec succès" {
		t.Errorf("message = %q", body["message"])
	}
	records, ok := body["records"].([]any)
	if !ok || len(records) != 3 {
		t.Fatalf("records = %v, want 3 rows", body["records"])
	}
	first, _ := records[0].(map[string]any)
	if first["student_id"] != float64(1) || first["status"] != "present" {
		t.Errorf("records[0] = %v", first)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBulkRecordInvalidStatusAborts(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(1, 2, "2025-03-10", "present").
		WillReturnRows(attendanceRow(10, 1, 2, "2025-03-10", "present", true))
	mock.ExpectRollback()

	resp := postJSON(t, app, "/api/attendance/bulk-record", map[string]any{
		"records": []map[string]any{
			{"studentId": 1, "subjectId": 2, "date": "2025-03-10", "status": "present"},
			{"studentId": 3, "subjectId": 2, "date": "2025-03-10", "status": "vacances"},
		},
	})

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Statut invalide dans les enregistrements" {
		t.Errorf("error = %q", body["error"])
	}
	if body["details"] != "Record #2 : statut « vacances »" {
		t.Errorf("details = %q", body["details"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBulkRecordMissingFieldAborts(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	resp := postJSON(t, app, "/api/attendance/bulk-record", map[string]any{
		"records": []map[string]any{
			{"studentId": 1, "subjectId": 2, "status": "present"},
		},
	})

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Champs manquants dans les enregistrements" {
		t.Errorf("error = %q", body["error"])
	}
	if body["details"] != "Record #1 invalide" {
		t.Errorf("details = %q", body["details"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBulkRecordStoreFailureRollsBack(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(1, 2, "2025-03-10", "present").
		WillReturnError(errors.New("connexion perdue"))
	mock.ExpectRollback()

	resp := postJSON(t, app, "/api/attendance/bulk-record", map[string]any{
		"records": []map[string]any{
			{"studentId": 1, "subjectId": 2, "date": "2025-03-10", "status": "present"},
		},
	})

	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Erreur serveur" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStudentAttendanceUnknownStudent(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT 1 FROM users").
		WithArgs(99, "student").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/status/99", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Élève non trouvé" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestClassAttendanceUnknownClass(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT 1 FROM classes").
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/status/class/12", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Classe non trouvée" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
