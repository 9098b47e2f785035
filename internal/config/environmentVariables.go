package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo

	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	USER_ID_KEY                     = "userId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//auth - the real token comes from the auth collaborator, this is the dev default
	NoAuthBypass = true
	AuthToken    = "dev-token"

	//knowledge base
	ChunkWindowSize    = 1000 //words per chunk
	ChunkOverlap       = 100  //words shared between consecutive chunks
	MinTermLength      = 3    //terms shorter than this are dropped by the tokenizer
	DefaultSearchLimit = 10
	MaxRelevantChunks  = 3
	DefaultPageSize    = 20
	MaxPageSize        = 100

	//extraction
	PageExtractTimeout = 10 * time.Second
	UploadDir          = "uploaded_documents"
	MaxUploadSizeBytes = 32 << 20 //32mb

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobTimeout                      = 60 * time.Second

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour
)
