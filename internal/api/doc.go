// Package api handles incoming HTTP requests for tasks and users, validates
// request bodies, and formats responses. It adapts HTTP concerns to the
// TaskService and UserService use cases and maps their errors to status codes.
package api
