package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"schedule-server/timetable"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	return path
}

func TestReadLayoutFromJSON(t *testing.T) {
	// Arrange
	content := `{
		"day_column": "ДН",
		"lesson_marker": "урок",
		"weekdays": [{"code": "ПНД", "day": "Понедельник"}],
		"levels": {
			"primary": {"type_column": "Тип", "number_column": "Номер", "start_column": "Начало", "end_column": "Конец"}
		},
		"classes": [
			{"name": "1 класс", "level": "primary", "subject_column": "1 класс Урок", "teacher_column": "1 класс Педагог", "tutor_column": "1 класс Тьютор", "room_column": "1 класс Комната"}
		]
	}`
	path := createTempFile(t, content)

	// Act
	layout, err := ReadLayoutFromJSON(path)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if layout.DayName("ПНД") != "Понедельник" {
		t.Errorf("Expected 'Понедельник', got '%s'", layout.DayName("ПНД"))
	}
	if len(layout.Classes) != 1 || layout.Classes[0].Level != timetable.LevelPrimary {
		t.Errorf("Unexpected classes %+v", layout.Classes)
	}
}

func TestReadLayoutFromJSON_Invalid(t *testing.T) {
	path := createTempFile(t, `{"day_column": "Day", "classes": []}`)

	_, err := ReadLayoutFromJSON(path)

	if !errors.Is(err, timetable.ErrInvalidLayout) {
		t.Errorf("Expected ErrInvalidLayout, got %v", err)
	}
}

func TestReadLayoutFromJSON_Errors(t *testing.T) {
	if _, err := ReadLayoutFromJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := ReadLayoutFromJSON(createTempFile(t, "{")); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestReadLayoutFromJSON_ShippedRussianLayout(t *testing.T) {
	layout, err := ReadLayoutFromJSON(filepath.Join("..", "resources", "schedule_layout_ru.json"))
	if err != nil {
		t.Fatalf("Expected shipped layout to load, got %v", err)
	}
	if len(layout.Classes) != 10 {
		t.Errorf("Expected 10 classes, got %d", len(layout.Classes))
	}
	if layout.DayOrder("Пятница") != 5 {
		t.Errorf("Expected Friday to be day 5, got %d", layout.DayOrder("Пятница"))
	}
}
