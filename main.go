package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quizserver/database"  //PostgreSQLとRedisの初期化
	"quizserver/handlers"  //クイズゲームに関連するHTTPリクエストの処理
	"quizserver/questions" //クイズ問題バンク
	"quizserver/utils"     //ロガーの初期化とCronジョブ(PostgreSQLの定期クリーンナップ)
	"quizserver/watch"     //ルーム状態のWebSocket配信

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

func main() {
	var logger *zap.Logger
	var err error
	logger, err = utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	// Websocket接続で用いるアップグレーダーを初期化
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	// 非同期でPostgreSQLとRedisの初期化
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		config, err := database.LoadConfig("config.json")
		if err != nil {
			logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
		}
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		done <- true
	}()

	// 2つの初期化が完了するのを待つ
	<-done
	<-done

	// クイズ問題バンクの読み込み
	bank, err := questions.LoadBank("questions.json")
	if err != nil {
		logger.Fatal("問題ファイルの読み込みに失敗しました", zap.Error(err))
	}
	logger.Info("問題バンクを読み込みました", zap.Int("count", bank.Size()))

	// クーロンスケジューラのセットアップと呼び出し
	go utils.CronCleaner(db, logger)

	// ルーム更新のPub/Sub購読とWebSocket配信ハブを起動
	hub := watch.NewHub()
	go hub.Run(context.Background(), db, rdb, logger)

	router := gin.Default()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://192.168.1.1:8080"}, //ここにデプロイサーバーのIPアドレスを設定
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	//各HTTPリクエストのルーティング
	router.POST("/auth/guest", func(c *gin.Context) {
		handlers.GuestAuth(c, db, logger)
	})
	router.POST("/rooms", func(c *gin.Context) {
		handlers.RoomCreate(c, db, rdb, logger)
	})
	router.POST("/rooms/join", func(c *gin.Context) {
		handlers.RoomJoinByCode(c, db, rdb, logger)
	})
	router.POST("/rooms/:id/join", func(c *gin.Context) {
		handlers.RoomJoin(c, db, rdb, logger)
	})
	router.POST("/rooms/:id/start", func(c *gin.Context) {
		handlers.RoomStart(c, db, rdb, logger)
	})
	router.POST("/rooms/:id/skip-turn", func(c *gin.Context) {
		handlers.SkipTurn(c, db, rdb, logger)
	})
	router.POST("/rooms/:id/mark-dead", func(c *gin.Context) {
		handlers.MarkDead(c, db, rdb, logger)
	})
	router.POST("/rooms/:id/update-score", func(c *gin.Context) {
		handlers.UpdateScore(c, db, rdb, logger)
	})
	router.GET("/rooms/:id/state", func(c *gin.Context) {
		handlers.RoomState(c, db, logger)
	})
	router.GET("/rooms/:id/watch", func(c *gin.Context) {
		watch.HandleWatch(c, db, rdb, logger, hub, upgrader)
	})
	router.GET("/questions/random", func(c *gin.Context) {
		handlers.RandomQuestion(c, bank, logger)
	})
	router.GET("/profile/:id/stats", func(c *gin.Context) {
		handlers.ProfileStats(c, db, logger)
	})
	router.GET("/profile/:id/history", func(c *gin.Context) {
		handlers.ProfileHistory(c, db, logger)
	})

	// テスト時はHTTPサーバーとして運用。デフォルトポートは ":8080"
	router.Run()

	// // 本番環境ではコメントアウトを解除し、HTTPSサーバーとして運用
	// err = router.RunTLS(":443", "path/to/cert.pem", "path/to/key.pem")
	// if err != nil {
	// 	logger.Fatal("Failed to run HTTPS server: ", zap.Error(err))
	// }
}
