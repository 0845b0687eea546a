//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/spunky-sabin/clash-clone/internal/api"
	"github.com/spunky-sabin/clash-clone/internal/converter"
	"github.com/spunky-sabin/clash-clone/internal/loader"
	"github.com/spunky-sabin/clash-clone/internal/models"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var (
	catalogOnce sync.Once
	catalog     *models.Catalog
	catalogErr  error
)

// loadCatalog reads the catalog once per container
func loadCatalog() (*models.Catalog, error) {
	catalogOnce.Do(func() {
		dir := os.Getenv("DATA_DIR")
		if dir == "" {
			dir = "data"
		}
		catalog, catalogErr = loader.LoadCatalog(dir)
	})
	return catalog, catalogErr
}

func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	cat, err := loadCatalog()
	if err != nil {
		log.Printf("catalog: %v", err)
		return errResp(http.StatusInternalServerError, "catalog unavailable")
	}
	return handle(cat, event, time.Now())
}

// handle answers one analyze request against a loaded catalog
func handle(cat *models.Catalog, event events.LambdaFunctionURLRequest, now time.Time) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req converter.AnalyzeRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(http.StatusBadRequest, "invalid JSON: "+err.Error())
	}

	p, err := api.Prepare(req)
	if err != nil {
		return errResp(api.StatusFor(err), err.Error())
	}
	report, err := p.Run(cat, now)
	if err != nil {
		return errResp(api.StatusFor(err), err.Error())
	}

	respJSON, err := json.Marshal(converter.ReportToDTO(report, true))
	if err != nil {
		return errResp(http.StatusInternalServerError, "failed to encode report")
	}
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(converter.ErrorDTO{Error: msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
