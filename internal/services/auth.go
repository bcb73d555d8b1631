package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
  "github.com/simucrowd/simucrowd-backend/internal/requestdata"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) (string, error)
  LoginUser(ctx context.Context, email, password string) (string, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  avatarService AvatarService
  jwtSecretKey  string
  accessTTL     time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  avatarService AvatarService,
  jwtSecretKey string,
  accessTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    avatarService: avatarService,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
  }
}

// RegisterUser creates the account and returns a signed access token. New
// accounts start on the free tier with its full monthly credit allowance.
func (as *authService) RegisterUser(ctx context.Context, user *types.User) (string, error) {
  user.Email = strings.ToLower(strings.TrimSpace(user.Email))
  user.Name = strings.TrimSpace(user.Name)

  if user.Email == "" || !strings.Contains(user.Email, "@") {
    return "", fmt.Errorf("valid email required")
  }
  if len(user.Password) < 8 {
    return "", fmt.Errorf("password must be at least 8 characters")
  }
  if user.Name == "" {
    return "", fmt.Errorf("name required")
  }

  exists, eErr := as.userRepo.EmailExists(ctx, nil, user.Email)
  if eErr != nil {
    return "", fmt.Errorf("failed to check email: %w", eErr)
  }
  if exists {
    return "", fmt.Errorf("email already registered")
  }

  hashed, hErr := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if hErr != nil {
    return "", fmt.Errorf("failed to hash password: %w", hErr)
  }
  user.Password = string(hashed)

  user.ID = uuid.New()
  user.PlanLevel = types.PlanFree
  user.SubscriptionStatus = types.SubscriptionActive
  user.Points = types.LimitsFor(types.PlanFree).MonthlyCredits

  if as.avatarService != nil {
    avatar, aErr := as.avatarService.GenerateUserAvatar(user)
    if aErr != nil {
      return "", fmt.Errorf("failed to generate user avatar: %w", aErr)
    }
    user.Avatar = avatar
  }

  if _, cErr := as.userRepo.Create(ctx, nil, user); cErr != nil {
    return "", fmt.Errorf("failed to create user: %w", cErr)
  }

  return as.generateAccessToken(user)
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
  email = strings.ToLower(strings.TrimSpace(email))

  user, uErr := as.userRepo.GetByEmail(ctx, nil, email)
  if uErr != nil {
    return "", fmt.Errorf("invalid email or password")
  }
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", fmt.Errorf("invalid email or password")
  }
  return as.generateAccessToken(user)
}

// SetContextFromToken validates the bearer token and loads the request data
// carrier used by everything downstream of the auth middleware.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims := jwt.MapClaims{}
  token, pErr := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if pErr != nil || !token.Valid {
    return ctx, fmt.Errorf("invalid token")
  }

  sub, sErr := claims.GetSubject()
  if sErr != nil || sub == "" {
    return ctx, fmt.Errorf("token missing subject")
  }
  userID, idErr := uuid.Parse(sub)
  if idErr != nil {
    return ctx, fmt.Errorf("token subject is not a user id")
  }

  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  now := time.Now()
  claims := jwt.MapClaims{
    "sub": user.ID.String(),
    "iat": now.Unix(),
    "exp": now.Add(as.accessTTL).Unix(),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString([]byte(as.jwtSecretKey))
  if err != nil {
    return "", fmt.Errorf("failed to sign token: %w", err)
  }
  return signed, nil
}
