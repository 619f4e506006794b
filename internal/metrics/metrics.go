// Package metrics exposes Prometheus counters for the task workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staff_management_tasks_created_total",
		Help: "Number of tasks created",
	})

	TasksAssigned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staff_management_tasks_assigned_total",
		Help: "Number of task assignments",
	})

	TaskStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staff_management_task_status_changes_total",
		Help: "Number of task status changes by target status",
	}, []string{"status"})

	ReviewsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staff_management_reviews_submitted_total",
		Help: "Number of reviews submitted by verdict",
	}, []string{"verdict"})
)
