// Package services содержит бизнес-логику жизненного цикла учётных записей:
// создание, обновление, вход по учётным данным и проверку занятости имени.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/user-accounts/internal/models"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// ExistsByUsername проверяет, занято ли имя пользователя.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// FindUserByID возвращает пользователя по ID или ErrUserNotFound.
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	// FindUserByUsernameAndPassword ищет точное совпадение имени и пароля.
	FindUserByUsernameAndPassword(ctx context.Context, username, password string) (*models.User, error)
	// MarkUserLoggedIn выставляет признак входа строке с совпадающими
	// учётными данными; при отсутствии совпадения молча ничего не делает.
	MarkUserLoggedIn(ctx context.Context, username, password string) error
	// CreateUser вставляет нового пользователя и возвращает сохранённое представление.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// UpdateUser перезаписывает изменяемые поля строки с данным ID.
	UpdateUser(ctx context.Context, user *models.User) error
	// ListUsersOrderedByUsername возвращает всех пользователей по алфавиту.
	ListUsersOrderedByUsername(ctx context.Context) ([]*models.User, error)
}

// UserService реализует бизнес-логику работы с учётными записями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// GetAllUsers возвращает полный список пользователей, отсортированный по имени.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsersOrderedByUsername(ctx)
}

// GetUserByID возвращает пользователя по ID. Отсутствие пользователя
// представлено ошибкой storage.ErrUserNotFound — выбор ответа остаётся
// за вызывающим слоем API.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindUserByID(ctx, id)
}

// CreateUser создает нового пользователя, копируя имя и пароль из запроса.
// Остальные поля получают значения по умолчанию: признак входа true,
// дата создания назначается хранилищем, дата рождения не задана.
// Доступность имени здесь не проверяется — это обязанность вызывающего;
// при дубликате хранилище вернёт ErrUsernameTaken.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	user := models.User{
		Username: username,
		Password: password,
		LoggedIn: true,
	}
	saved, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new user", slog.Int64("id", saved.ID), slog.String("username", saved.Username))
	return saved, nil
}

// UpdateUserData безусловно перезаписывает имя, дату рождения и признак
// входа пользователя значениями из запроса и сохраняет результат.
// Это полная перезапись трёх полей, а не частичный патч.
func (s *UserService) UpdateUserData(ctx context.Context, current *models.User, upd models.UpdateData) (*models.User, error) {
	current.Username = upd.Username
	current.Birthday = upd.Birthday
	current.LoggedIn = upd.LoggedIn
	if err := s.repo.UpdateUser(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// GetUserByCredentialsAndLogIn сначала выставляет признак входа строке
// с совпадающими учётными данными (молчаливый no-op при несовпадении),
// затем перечитывает пользователя по той же паре имя/пароль.
// Итог: при совпадении возвращается пользователь с LoggedIn == true,
// при несовпадении — ErrUserNotFound, а сохранённый признак входа не меняется.
func (s *UserService) GetUserByCredentialsAndLogIn(ctx context.Context, username, password string) (*models.User, error) {
	if err := s.repo.MarkUserLoggedIn(ctx, username, password); err != nil {
		return nil, err
	}
	return s.repo.FindUserByUsernameAndPassword(ctx, username, password)
}

// IsExistingUsername проверяет, занято ли имя пользователя.
func (s *UserService) IsExistingUsername(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsByUsername(ctx, username)
}
