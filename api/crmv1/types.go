package crmv1

import (
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TimeWindow bounds a timestamp column. At least one bound must be set;
// both bounds are inclusive.
type TimeWindow struct {
	After  *time.Time `json:"after,omitempty"`
	Before *time.Time `json:"before,omitempty"`
}

// IDSet lists ids that must all be present in an array-valued column. An
// empty set places no restriction on the column.
type IDSet struct {
	IDs []int64 `json:"ids,omitempty"`
}

// QueryRequest carries the structured predicate set for the trusted query
// path. Keys are behavior-table column names.
type QueryRequest struct {
	TimeWindows map[string]TimeWindow `json:"time_windows,omitempty"`
	IDSets      map[string]IDSet      `json:"id_sets,omitempty"`
}

// RawQueryRequest carries a caller-supplied filter expression. The
// expression is echoed into the query verbatim; this path exists for
// diagnostics only.
type RawQueryRequest struct {
	Query string `json:"query"`
}

// User is one matched behavior-table row.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// MaterializeRequest asks for one synthesized content record.
type MaterializeRequest struct {
	ID int64 `json:"id"`
}

// Publisher credits one content publisher.
type Publisher struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Content is one synthesized content record. Error is set when the
// requested id failed as an individual item; the stream itself
// continues.
type Content struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Publishers  []Publisher `json:"publishers,omitempty"`
	URL         string      `json:"url,omitempty"`
	Image       string      `json:"image,omitempty"`
	ContentType string      `json:"content_type,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitzero"`
	Views       int64       `json:"views,omitempty"`
	Likes       int64       `json:"likes,omitempty"`
	Dislikes    int64       `json:"dislikes,omitempty"`
	Error       *WireError  `json:"error,omitempty"`
}

// EmailMessage is the email notification variant.
type EmailMessage struct {
	Subject string   `json:"subject"`
	From    string   `json:"from"`
	To      []string `json:"to"`
	Body    string   `json:"body"`
}

// SMSMessage is the SMS notification variant.
type SMSMessage struct {
	Sender     string   `json:"sender"`
	Recipients []string `json:"recipients"`
	Body       string   `json:"body"`
}

// InAppMessage is the in-app notification variant.
type InAppMessage struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	DeviceID string `json:"device_id"`
}

// SendRequest carries exactly one notification variant plus an optional
// caller correlation id. A request with no variant set is rejected with
// InvalidArgument for that item.
type SendRequest struct {
	MessageID string        `json:"message_id,omitempty"`
	Email     *EmailMessage `json:"email,omitempty"`
	SMS       *SMSMessage   `json:"sms,omitempty"`
	InApp     *InAppMessage `json:"in_app,omitempty"`
}

// SendResponse acknowledges acceptance of one notification. Error is set
// when that single item failed; the stream itself continues.
type SendResponse struct {
	MessageID string     `json:"message_id"`
	Timestamp time.Time  `json:"timestamp,omitzero"`
	Error     *WireError `json:"error,omitempty"`
}

// WireError carries a per-item failure across a streaming response.
type WireError struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

// WireErrorFromError converts an error into a per-item wire error,
// preserving the gRPC status code when one is attached.
func WireErrorFromError(err error) *WireError {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return &WireError{Code: uint32(codes.Internal), Message: err.Error()}
	}
	return &WireError{Code: uint32(st.Code()), Message: st.Message()}
}

// Status converts a per-item wire error back into a gRPC status error.
func (e *WireError) Status() error {
	if e == nil {
		return nil
	}
	return status.Error(codes.Code(e.Code), e.Message)
}

// WelcomeRequest starts one welcome campaign run.
type WelcomeRequest struct {
	ID           string  `json:"id"`
	IntervalDays int32   `json:"interval_days"`
	ContentIDs   []int64 `json:"content_ids"`
}

// WelcomeResponse reports one finished welcome campaign run.
type WelcomeResponse struct {
	ID           string `json:"id"`
	Acknowledged int64  `json:"acknowledged"`
}

// RecallRequest is declared for the re-engagement campaign. The method is
// not implemented.
type RecallRequest struct {
	ID            string  `json:"id"`
	LastVisitDays int32   `json:"last_visit_days"`
	ContentIDs    []int64 `json:"content_ids"`
}

// RecallResponse is declared for the re-engagement campaign.
type RecallResponse struct {
	ID string `json:"id"`
}

// RemindRequest is declared for the unfinished-content campaign. The
// method is not implemented.
type RemindRequest struct {
	ID            string `json:"id"`
	LastWatchDays int32  `json:"last_watch_days"`
}

// RemindResponse is declared for the unfinished-content campaign.
type RemindResponse struct {
	ID string `json:"id"`
}
