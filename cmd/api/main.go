// @title           Knowledge Base API
// @version         1.0
// @description     This API handles asynchronous document ingestion and ranked knowledge-base search
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/data/filestore"
	"github.com/avasani/KnowledgeAPI/internal/data/store"
	jobmodel "github.com/avasani/KnowledgeAPI/internal/domain/jobModel"
	"github.com/avasani/KnowledgeAPI/internal/handlers"
	"github.com/avasani/KnowledgeAPI/internal/job"
	"github.com/avasani/KnowledgeAPI/internal/kb"
	"github.com/avasani/KnowledgeAPI/internal/server"
	"github.com/avasani/KnowledgeAPI/internal/worker"
	"github.com/avasani/KnowledgeAPI/pkg/logger_i"
)

var (
	listenAddr        string
	uploadDir         string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.StringVar(&uploadDir, "upload-dir", config.UploadDir, "directory for uploaded document files")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	if redisJobs := store.GetRedisJobStore(serviceContext); redisJobs != nil {
		serviceConfig.JobStore = redisJobs
	} else {
		logger.Error("Redis job store is offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	files, err := filestore.New(uploadDir)
	if err != nil {
		logger.Error("Could not prepare the upload directory. Shutting down.", "dir", uploadDir, "error", err)
		return
	}
	knowledgeBase := kb.New(files)

	handlers.InitJobHandler(service, knowledgeBase, files)

	//init worker pool
	worker.InitServices(service, knowledgeBase)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
