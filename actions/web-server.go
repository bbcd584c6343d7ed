package actions

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/aws/s3"
	"github.com/relloyd/sfsync/aws/sfn"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/helper"
	"github.com/relloyd/sfsync/logger"
)

const (
	urlContext4Executions = "/executions"
)

type WebServerConfig struct {
	Deployment       config.Deployment
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	Scheme           string `errorTxt:"scheme" mandatory:"no"`
	Addr             net.IP `errorTxt:"address" mandatory:"no"`
	Port             int    `errorTxt:"port" mandatory:"no"`
	StackDumpOnPanic bool
	StateMachineARN  string
	RoleARN          string
	SFN              sfn.Client // optional; execution routes respond with an error without it.
	Exports          s3.Lister  // optional
}

func RunWebServer(web *WebServerConfig) error {
	// Setup logging.
	if web == nil {
		return errors.New("nil pointer to web server config supplied")
	}
	log := logger.NewLogger(constants.AppName, web.LogLevel, web.StackDumpOnPanic)
	// Check if we have valid input params.
	err := helper.ValidateStructIsPopulated(web)
	if err != nil {
		return err
	}
	// Start the web server.
	srv, chanStopServer := runServer(log, web)
	// Block & wait for completion.
	return waitForServer(log, srv, chanStopServer)
}

// newRouter registers the API routes.
func newRouter(log logger.Logger, web *WebServerConfig, chanStopServer chan string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/stop", GetHandlerStopServer(log, chanStopServer))
	r.Path("/health").HandlerFunc(GetHandlerHealth(log))
	r.Path("/plan").Methods(http.MethodGet).HandlerFunc(GetHandlerPlan(log, web.Deployment))
	r.Path(urlContext4Executions).Methods(http.MethodGet).HandlerFunc(
		GetHandlerExecutionList(log, web.SFN, web.StateMachineARN))
	r.Path(urlContext4Executions).Methods(http.MethodPost).HandlerFunc(
		GetHandlerExecutionStart(log, web.SFN, web.Deployment, web.StateMachineARN, web.RoleARN))
	r.Path(urlContext4Executions + "/{name}").Methods(http.MethodGet).HandlerFunc(
		GetHandlerExecutionStatus(log, web.SFN, web.StateMachineARN))
	r.Path("/exports").Methods(http.MethodGet).HandlerFunc(GetHandlerExportList(log, web.Exports, web.Deployment.OutputBucket))
	return r
}

// runServer starts a web server and returns:
// 1) the server; and
// 2) a channel that can be used to stop the web server
func runServer(log logger.Logger, web *WebServerConfig) (*http.Server, chan string) {
	chanStopServer := make(chan string, 1)
	r := newRouter(log, web, chanStopServer)
	// Configure HTTP server.
	srv := &http.Server{
		Addr:         fmt.Sprintf("%v:%v", web.Addr, web.Port),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r, // supply our instance of gorilla/mux.
	}
	// Run HTTP server non-blocking.
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			if err == http.ErrServerClosed {
				log.Info(err)
			} else {
				log.Panic(err)
			}
		}
	}()
	log.Info(fmt.Sprintf("Listening on %v://%v:%v", strings.ToLower(web.Scheme), web.Addr, web.Port))
	return srv, chanStopServer
}

func waitForServer(log logger.Logger, srv *http.Server, chanStopServer chan string) error {
	// Accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+\) will not be caught.
	chanOS := make(chan os.Signal, 1)
	signal.Notify(chanOS, os.Interrupt) // request signals be sent to chanOS.
	select {
	case <-chanStopServer:
	case <-chanOS:
	}
	fmt.Println() // print new line char for clean looking CLI.
	log.Info("Shutting down web server...")
	// Executions run in Step Functions so there is nothing local to drain.
	wait := time.Second * 15
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return srv.Shutdown(ctx) // Doesn't block if no connections, but will otherwise wait until the timeout deadline.
}
