package actions

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/relloyd/sfsync/aws/s3"
	"github.com/relloyd/sfsync/aws/sfn"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/pipeline"
)

type WebServerResponse uint32

const (
	Okay WebServerResponse = iota + 1
	Error
)

func (w WebServerResponse) MarshalJSON() ([]byte, error) {
	var retval string
	switch w {
	case Okay:
		retval = "ok"
	case Error:
		retval = "error"
	default:
		err := fmt.Errorf("unhandled WebServerResponse value in MarshalJSON() conversion")
		return nil, err
	}
	return json.Marshal(retval)
}

type ResponseSimple struct {
	ServerStatus WebServerResponse `json:"status"`
	Message      string            `json:"message,omitempty"`
}

type ResponsePlan struct {
	Status   WebServerResponse  `json:"status"`
	Manifest *pipeline.Manifest `json:"plan"`
}

type ResponseExecution struct {
	Status    WebServerResponse `json:"status"`
	Message   string            `json:"message"`
	Execution *sfn.Execution    `json:"execution,omitempty"`
}

type ResponseExecutionList struct {
	Status     WebServerResponse `json:"status"`
	Executions []sfn.Execution   `json:"executions"`
}

type ResponseExportList struct {
	Status  WebServerResponse `json:"status"`
	Exports []Export          `json:"exports"`
}

// ExecutionARN derives the ARN of a named execution from its state machine ARN.
func ExecutionARN(stateMachineARN, name string) string {
	return strings.Replace(stateMachineARN, ":stateMachine:", ":execution:", 1) + ":" + name
}

func GetHandlerHealth(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseSimple{ServerStatus: Okay})
	}
}

func GetHandlerStopServer(log logger.Logger, chanStop chan string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		chanStop <- "stop"
		log.Info("Stop signal sent")
		respond(log, w, ResponseSimple{ServerStatus: Okay})
	}
}

func GetHandlerPlan(log logger.Logger, d config.Deployment) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := describePlan(d, time.Now)
		if err != nil {
			logAndRespond(log, err, w, http.StatusBadRequest, ResponseSimple{ServerStatus: Error, Message: err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponsePlan{Status: Okay, Manifest: m})
	}
}

// GetHandlerExecutionStart starts the workflow with the scheduled payload.
func GetHandlerExecutionStart(log logger.Logger, c sfn.Client, d config.Deployment, stateMachineARN, roleARN string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			logAndRespond(log, errNoStepFunctions, w, http.StatusServiceUnavailable,
				ResponseExecution{Status: Error, Message: errNoStepFunctions.Error()})
			return
		}
		e, err := RunExecution(r.Context(), log, &RunConfig{
			Deployment:      d,
			StateMachineARN: stateMachineARN,
			RoleARN:         roleARN,
			Client:          c,
			Output:          io.Discard,
		})
		if err != nil {
			logAndRespond(log, err, w, http.StatusBadRequest,
				ResponseExecution{Status: Error, Message: fmt.Sprintf("unable to start execution: %v", err)})
			return
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseExecution{Status: Okay, Message: "execution started", Execution: e})
	}
}

func GetHandlerExecutionStatus(log logger.Logger, c sfn.Client, stateMachineARN string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			logAndRespond(log, errNoStepFunctions, w, http.StatusServiceUnavailable,
				ResponseExecution{Status: Error, Message: errNoStepFunctions.Error()})
			return
		}
		name := mux.Vars(r)["name"]
		e, err := c.DescribeExecution(r.Context(), ExecutionARN(stateMachineARN, name))
		if err != nil {
			log.Info("HTTP request for status of execution ", name, " failed")
			logAndRespond(log, err, w, http.StatusBadRequest,
				ResponseExecution{Status: Error, Message: fmt.Sprintf("execution %v: %v", name, err)})
			return
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseExecution{Status: Okay, Execution: e})
	}
}

// GetHandlerExecutionList supports ?max=N.
func GetHandlerExecutionList(log logger.Logger, c sfn.Lister, stateMachineARN string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			logAndRespond(log, errNoStepFunctions, w, http.StatusServiceUnavailable,
				ResponseSimple{ServerStatus: Error, Message: errNoStepFunctions.Error()})
			return
		}
		limit := 20
		if s := r.URL.Query().Get("max"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				logAndRespond(log, fmt.Errorf("bad max %q", s), w, http.StatusBadRequest,
					ResponseSimple{ServerStatus: Error, Message: "max must be a positive integer"})
				return
			}
			limit = n
		}
		list, err := RunListExecutions(r.Context(), log, &ExecutionsConfig{
			StateMachineARN: stateMachineARN, Max: limit, Client: c, Output: io.Discard, Format: FormatText,
		})
		if err != nil {
			logAndRespond(log, err, w, http.StatusBadRequest, ResponseSimple{ServerStatus: Error, Message: err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseExecutionList{Status: Okay, Executions: list})
	}
}

func GetHandlerExportList(log logger.Logger, c s3.Lister, bucket string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			err := fmt.Errorf("no output bucket configured")
			logAndRespond(log, err, w, http.StatusServiceUnavailable, ResponseSimple{ServerStatus: Error, Message: err.Error()})
			return
		}
		exports, err := RunListExports(r.Context(), log, &ExportsConfig{
			Bucket: bucket, Client: c, Output: io.Discard, Format: FormatText,
		})
		if err != nil {
			logAndRespond(log, err, w, http.StatusBadGateway, ResponseSimple{ServerStatus: Error, Message: err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseExportList{Status: Okay, Exports: exports})
	}
}

var errNoStepFunctions = fmt.Errorf("no state machine configured")

// logAndRespond will log the error, write the status code and r to w.
func logAndRespond(log logger.Logger, err error, w http.ResponseWriter, code int, r interface{}) {
	log.Error(err)
	w.WriteHeader(code)
	respond(log, w, r)
}

// respond will marshal i to a string and write it to w.
func respond(log logger.Logger, w http.ResponseWriter, i interface{}) {
	j, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	_, err = fmt.Fprint(w, string(j))
	if err != nil {
		log.Panic(err)
	}
}
