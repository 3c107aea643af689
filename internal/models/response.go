package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ListData wraps a list payload
type ListData struct {
	List []StopDepartures `json:"list"`
}

// EntryData wraps a single-entry payload
type EntryData struct {
	Entry StopDepartures `json:"entry"`
}

// ResponseCurrentTime returns the current time in epoch milliseconds
func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}

// NewResponse builds a version 2 response envelope
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusOK, data, "OK")
}

func NewListResponse(list []StopDepartures) ResponseModel {
	if list == nil {
		list = []StopDepartures{}
	}
	return NewOKResponse(ListData{List: list})
}

func NewEntryResponse(entry StopDepartures) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry})
}
