package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString время дня в формате "HH:MM" (минутная точность)
// Используется для расписаний и границ временных интервалов
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

const layout = "15:04"

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(layout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(s), nil
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат значения
// "24:00" допустимо как граница конца рабочего интервала
func (t TimeString) Validate() error {
	if t == "24:00" {
		return nil
	}
	if _, err := time.Parse(layout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, t)
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	if t == "24:00" {
		return 24 * 60, nil
	}
	parsed, err := time.Parse(layout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, t)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore проверяет, что время строго раньше other
// Некорректные значения считаются равными нулю минут
func (t TimeString) IsBefore(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a > b
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
// Выход за пределы суток считается ошибкой (расписания не пересекают полночь)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes", ErrTimeOutOfRange, t, minutes)
	}

	// 24:00 допустимо только как граница конца рабочего интервала
	if total == 24*60 {
		return TimeString("24:00"), nil
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// At привязывает время дня к календарной дате
func (t TimeString) At(date time.Time) (time.Time, error) {
	total, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), total/60, total%60, 0, 0, date.Location()), nil
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Postgres возвращает TIME как строку "HH:MM:SS"
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = truncateSeconds(v)
	case []byte:
		*t = truncateSeconds(string(v))
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
	return t.Validate()
}

func truncateSeconds(s string) TimeString {
	if len(s) > 5 {
		s = s[:5]
	}
	return TimeString(s)
}
