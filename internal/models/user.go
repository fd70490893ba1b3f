// Package models содержит доменную модель пользователя сервиса аккаунтов,
// а также вспомогательные типы для приёма данных из JSON-запросов
// и внешнее представление пользователя для ответов API.
package models

import (
	"time"

	"github.com/magabrotheeeer/user-accounts/internal/lib/dateonly"
)

// User представляет учётную запись пользователя.
// ID и CreationDate назначаются хранилищем при вставке и далее не меняются.
// Поле Birthday может быть nil — это означает, что дата рождения не указана.
type User struct {
	ID           int64      // Уникальный идентификатор, выдаётся базой
	Username     string     // Имя пользователя (уникальное)
	Password     string     // Пароль пользователя, хранится открытым текстом
	CreationDate time.Time  // Дата создания учётной записи
	LoggedIn     bool       // Признак входа, по умолчанию true при создании
	Birthday     *time.Time // Дата рождения, опциональная
}

// DummyUser используется для приёма данных из JSON-запроса обновления,
// прежде чем конвертировать их в UpdateData.
// Дата рождения приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyUser struct {
	Username string `json:"username"`
	Birthday string `json:"birthday"` // Дата в формате 02.01.2006, пустая строка — не указана
	LoggedIn bool   `json:"loggedIn"`
}

// UpdateData — уже разобранные данные обновления, применяемые к User.
// Все три поля перезаписывают сохранённые значения безусловно.
type UpdateData struct {
	Username string
	Birthday *time.Time
	LoggedIn bool
}

// UserResponse — внешнее представление пользователя.
// Пароль не сериализуется ни при каком пути выполнения,
// даты отображаются только календарной частью без времени и зоны.
type UserResponse struct {
	ID           int64          `json:"id"`
	Username     string         `json:"username"`
	CreationDate dateonly.Date  `json:"creationDate"`
	LoggedIn     bool           `json:"loggedIn"`
	Birthday     *dateonly.Date `json:"birthday"`
}

// Response конвертирует User во внешнее представление.
func (u *User) Response() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		CreationDate: dateonly.FromTime(u.CreationDate),
		LoggedIn:     u.LoggedIn,
		Birthday:     dateonly.FromTimePtr(u.Birthday),
	}
}
