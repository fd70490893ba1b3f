package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/user-accounts/internal/models"
)

// Ошибки уровня хранилища, по которым верхние слои выбирают HTTP-статус.
var (
	// ErrUserNotFound возвращается, когда пользователь не найден по id
	// или по паре имя/пароль.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken возвращается при нарушении уникальности имени,
	// в том числе при проигранной гонке между проверкой и вставкой.
	ErrUsernameTaken = errors.New("username is taken")
)

// ExistsByUsername проверяет, занято ли имя пользователя.
func (s *Storage) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const op = "storage.ExistsByUsername"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// FindUserByID возвращает пользователя по его ID.
func (s *Storage) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.FindUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password, creation_date, logged_in, birthday
			  FROM users
			  WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

// FindUserByUsernameAndPassword возвращает пользователя по точному совпадению
// имени и пароля.
func (s *Storage) FindUserByUsernameAndPassword(ctx context.Context, username, password string) (*models.User, error) {
	const op = "storage.FindUserByUsernameAndPassword"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password, creation_date, logged_in, birthday
			  FROM users
			  WHERE username = $1 AND password = $2`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username, password), op)
}

// MarkUserLoggedIn выставляет logged_in = true строке с совпадающими именем
// и паролем. Если такой строки нет, молча ничего не делает — это не ошибка.
func (s *Storage) MarkUserLoggedIn(ctx context.Context, username, password string) error {
	const op = "storage.MarkUserLoggedIn"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET logged_in = TRUE
			  WHERE username = $1 AND password = $2`
	if _, err := s.DB.ExecContext(ctx, query, username, password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateUser вставляет нового пользователя. ID и дата создания назначаются
// базой, logged_in получает значение по умолчанию true. Возвращает
// сохранённое представление. Нарушение уникальности имени превращается
// в ErrUsernameTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, password)
			  VALUES ($1, $2)
			  RETURNING id, creation_date, logged_in`
	saved := user
	err := s.DB.QueryRowContext(ctx, query, user.Username, user.Password).
		Scan(&saved.ID, &saved.CreationDate, &saved.LoggedIn)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &saved, nil
}

// UpdateUser перезаписывает имя, дату рождения и признак входа строки с данным ID.
func (s *Storage) UpdateUser(ctx context.Context, user *models.User) error {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET username = $1, birthday = $2, logged_in = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, user.Username, user.Birthday, user.LoggedIn, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// ListUsersOrderedByUsername возвращает всех пользователей,
// отсортированных по имени по возрастанию.
func (s *Storage) ListUsersOrderedByUsername(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsersOrderedByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password, creation_date, logged_in, birthday
			  FROM users
			  ORDER BY username`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		var birthday sql.NullTime
		if err = rows.Scan(&u.ID, &u.Username, &u.Password, &u.CreationDate,
			&u.LoggedIn, &birthday); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if birthday.Valid {
			u.Birthday = &birthday.Time
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var birthday sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.CreationDate,
		&u.LoggedIn, &birthday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if birthday.Valid {
		u.Birthday = &birthday.Time
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
