// Package dateonly реализует календарную дату для границы сериализации.
// Внутри сервиса даты хранятся как time.Time с полной точностью,
// наружу отдаётся только день, месяц и год в формате 02.01.2006.
package dateonly

import (
	"fmt"
	"strconv"
	"time"
)

// Layout — единственный текстовый формат календарной даты во внешнем контракте.
const Layout = "02.01.2006"

// Date оборачивает time.Time и сериализуется в JSON строкой формата 02.01.2006.
// Время суток и зона при сериализации отбрасываются.
type Date struct {
	time.Time
}

// FromTime создает Date из time.Time.
func FromTime(t time.Time) Date {
	return Date{Time: t}
}

// FromTimePtr создает *Date из *time.Time, сохраняя nil как nil.
func FromTimePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := FromTime(*t)
	return &d
}

// Parse разбирает строку формата 02.01.2006 в time.Time (UTC, полночь).
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// MarshalJSON возвращает дату строкой формата 02.01.2006.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(Layout))), nil
}

// UnmarshalJSON разбирает строку формата 02.01.2006 или null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := Parse(unquoted)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
