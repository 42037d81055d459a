package devserver

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nao1215/jinji/pkg/middleware"
)

// Server は開発用人事管理APIのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// db はSQLiteデータベース接続。
	db *sql.DB
	// tokenSecret はセッショントークン署名用の秘密鍵。
	tokenSecret string
}

// Config はサーバーの生成時設定。
type Config struct {
	// Port はリッスンポート。
	Port string
	// DBPath はSQLiteデータベースのファイルパス。
	DBPath string
	// TokenSecret はセッショントークン署名用の秘密鍵。
	TokenSecret string
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
	// Seed がtrueの場合、起動時にデモデータを投入する。
	Seed bool
}

// NewServer は新しい開発用サーバーを生成する。
// SQLiteデータベースの初期化とスキーマ作成を行う。
func NewServer(config Config) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", config.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	if config.Seed {
		if err := seedDemoData(sqlDB); err != nil {
			return nil, fmt.Errorf("デモデータ投入に失敗: %w", err)
		}
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(config.AllowedOrigins))

	s := &Server{
		router:      router,
		port:        config.Port,
		db:          sqlDB,
		tokenSecret: config.TokenSecret,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Handler はHTTPハンドラを返す。テストや別サーバーへの組み込みに使用する。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close はデータベース接続を閉じる。
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes はAPIルーティングを設定する。
// パスの形式（末尾スラッシュ含む）は本番バックエンドに合わせる。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	// 認証エンドポイント（認証不要）。
	// DRFのログインビューと同様にCSRF検証を適用しない。
	auth := api.Group("/auth")
	{
		auth.POST("/login/", s.handleLogin())
		auth.POST("/register/", s.handleRegister())
	}

	// 認証必須のエンドポイント。
	// CSRFミドルウェアは安全なメソッドでトークンCookieを発行し、
	// Cookieセッションによる状態変更リクエストを検証する。
	authorized := api.Group("")
	authorized.Use(middleware.CSRF())
	authorized.Use(middleware.TokenAuth(s.tokenSecret))
	{
		authorized.POST("/auth/logout/", s.handleLogout())
		authorized.GET("/users/me/", s.handleCurrentUser())

		employees := authorized.Group("/employees")
		{
			employees.GET("/", s.handleListEmployees())
			employees.POST("/", s.handleCreateEmployee())
			employees.GET("/:id/", s.handleGetEmployee())
			employees.PUT("/:id/", s.handleUpdateEmployee())
			employees.PATCH("/:id/", s.handleUpdateEmployee())
			employees.DELETE("/:id/", s.handleDeleteEmployee())
		}

		attendance := authorized.Group("/attendance")
		{
			attendance.GET("/", s.handleListAttendance())
			attendance.POST("/clock-in/", s.handleClockIn())
			attendance.POST("/clock-out/", s.handleClockOut())
		}

		leaves := authorized.Group("/leaves")
		{
			leaves.GET("/", s.handleListLeaves())
			leaves.POST("/", s.handleCreateLeave())
			leaves.POST("/:id/approve/", s.handleDecideLeave("APPROVED"))
			leaves.POST("/:id/reject/", s.handleDecideLeave("REJECTED"))
		}

		tasks := authorized.Group("/tasks")
		{
			tasks.GET("/", s.handleListTasks())
			tasks.POST("/", s.handleCreateTask())
			tasks.GET("/:id/", s.handleGetTask())
			tasks.POST("/:id/complete/", s.handleCompleteTask())
		}

		payslips := authorized.Group("/payslips")
		{
			payslips.GET("/", s.handleListPayslips())
			payslips.GET("/:id/", s.handleGetPayslip())
		}

		notifications := authorized.Group("/notifications")
		{
			notifications.GET("/", s.handleListNotifications())
			notifications.GET("/unread/", s.handleListUnreadNotifications())
			notifications.PUT("/:id/read/", s.handleMarkNotificationRead())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "jinji-devserver"})
	})
}

// hashPassword はパスワードのハッシュ値を返す。
// 開発用サーバーのため単純なSHA-256を使用する。
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// userResponse はユーザー情報のJSONレスポンス構造。
// クライアントがキャッシュするユーザー情報と同じ形式。
type userResponse struct {
	// ID はユーザーの一意識別子。
	ID string `json:"id"`
	// Username はログインに使用するユーザー名。
	Username string `json:"username"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// FirstName は名。
	FirstName string `json:"first_name"`
	// LastName は姓。
	LastName string `json:"last_name"`
	// Role は役割（HR_ADMIN / MANAGER / EMPLOYEE）。
	Role string `json:"role"`
	// Profile はプロフィール情報。
	Profile profileResponse `json:"profile"`
}

// profileResponse はプロフィール情報のJSONレスポンス構造。
type profileResponse struct {
	// Avatar はアバター画像のURL。
	Avatar string `json:"avatar"`
}

// loadUser はユーザーをIDで取得する。
func (s *Server) loadUser(userID string) (userResponse, error) {
	var u userResponse
	err := s.db.QueryRow(`
		SELECT id, username, email, first_name, last_name, role, avatar_url
		FROM users WHERE id = ?
	`, userID).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Profile.Avatar)
	if err != nil {
		return userResponse{}, err
	}
	return u, nil
}

// handleLogin はユーザー名とパスワードを検証してセッショントークンを発行するハンドラを返す。
// 認証失敗時はDRF互換のnon_field_errorsレスポンスを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "リクエストボディが不正です"})
			return
		}

		var userID, passwordHash string
		err := s.db.QueryRow(`SELECT id, password_hash FROM users WHERE username = ?`, req.Username).
			Scan(&userID, &passwordHash)
		if err == sql.ErrNoRows || (err == nil && passwordHash != hashPassword(req.Password)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"non_field_errors": []string{"Unable to log in with provided credentials."},
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "ユーザーの取得に失敗しました"})
			log.Printf("ログイン時のユーザー取得エラー: %v", err)
			return
		}

		user, err := s.loadUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "ユーザーの取得に失敗しました"})
			return
		}

		token, err := middleware.GenerateToken(s.tokenSecret, user.ID, user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "トークンの生成に失敗しました"})
			log.Printf("トークン生成エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// handleRegister は新規ユーザーを登録するハンドラを返す。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username  string `json:"username"`
			Email     string `json:"email"`
			Password  string `json:"password"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "リクエストボディが不正です"})
			return
		}
		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "ユーザー名とパスワードは必須です"})
			return
		}

		userID := uuid.New().String()
		_, err := s.db.Exec(`
			INSERT INTO users (id, username, email, password_hash, first_name, last_name)
			VALUES (?, ?, ?, ?, ?, ?)
		`, userID, req.Username, req.Email, hashPassword(req.Password), req.FirstName, req.LastName)
		if err != nil {
			// usernameのUNIQUE制約違反を含む
			c.JSON(http.StatusBadRequest, gin.H{"detail": "ユーザーの登録に失敗しました"})
			return
		}

		user, err := s.loadUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "ユーザーの取得に失敗しました"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// handleLogout はログアウトを処理するハンドラを返す。
// トークンはステートレスなためサーバー側の破棄対象はなく、
// 本番バックエンドと同じ応答のみ返す。
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out."})
	}
}

// handleCurrentUser は認証済みユーザーの情報を返すハンドラを返す。
func (s *Server) handleCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		user, err := s.loadUser(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
