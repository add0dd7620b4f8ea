package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"StockKeeper/internal/model"
	"StockKeeper/internal/repo"
)

var (
	// ErrUsernameTaken — username уже занят.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUserNotFound — пользователь с таким username не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword — пароль не совпал с сохранённым хешем.
	ErrInvalidPassword = errors.New("password is incorrect")
)

// bcryptCost — рабочий фактор хеширования паролей.
const bcryptCost = 10

// UserService инкапсулирует регистрацию и вход.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// hashPassword — единственная точка превращения пароля в хеш.
// Любой путь записи, несущий пароль, обязан проходить через неё.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register создаёт пользователя с захешированным паролем.
// Предпроверка занятости username не атомарна; уникальный индекс в БД
// страхует гонку — проигравшая вставка тоже отдаёт ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, firstName, lastName, username, password string) (*model.User, error) {
	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Password:  hash,
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if u, gerr := s.repo.GetUserByUsername(ctx, username); gerr == nil && u != nil {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return created, nil
}

// Login проверяет пару username/пароль и возвращает пользователя.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	// bcrypt сравнивает за константное время
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}
