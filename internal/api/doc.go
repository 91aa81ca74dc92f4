// Package api provides the HTTP handlers, request/response models, and
// router for the task-tracking API. Handlers parse and validate requests,
// delegate to the service layer, and translate service errors into
// sanitized HTTP responses.
package api
