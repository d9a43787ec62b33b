// Package domain defines the core business entities of the task manager:
// tasks with their status and priority enumerations, and user accounts.
// Entities carry their own validation rules; persistence and transport
// concerns live in other packages.
package domain
