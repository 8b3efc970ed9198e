package teachers

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestClassAveragesUnknownTeacher(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT 1 FROM users").
		WithArgs(99, "teacher").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	resp := getPath(t, app, "/api/teachers/99/class-averages")
	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Enseignant non trouvé" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAttendanceRatesMissingSubject(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT 1 FROM users").
		WithArgs(5, "teacher").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT subject_id FROM users").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"subject_id"}).AddRow(nil))

	resp := getPath(t, app, "/api/teachers/5/attendance-rates")
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Information sur la matière manquante" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// With no attendance recorded the endpoint emits one zero-rate row per
// assigned class instead of an empty array.
func TestAttendanceRatesZeroFill(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT 1 FROM users").
		WithArgs(5, "teacher").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT subject_id FROM users").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"subject_id"}).AddRow(2))
	mock.ExpectQuery("WITH teacher_classes").
		WithArgs(5, 2).
		WillReturnRows(sqlmock.NewRows([]string{"class_name", "attendance_rate"}))
	mock.ExpectQuery("SELECT DISTINCT c.name").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"class_name"}).
			AddRow("3A").AddRow("3B"))

	resp := getPath(t, app, "/api/teachers/5/attendance-rates")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var rates []map[string]any
	if err := json.Unmarshal(raw, &rates); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	if len(rates) != 2 {
		t.Fatalf("got %d rows, want 2", len(rates))
	}
	if rates[0]["class_name"] != "3A" || rates[0]["attendance_rate"] != float64(0) {
		t.Errorf("rates[0] = %v", rates[0])
	}
	if rates[1]["class_name"] != "3B" || rates[1]["attendance_rate"] != float64(0) {
		t.Errorf("rates[1] = %v", rates[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
