package handlers

import (
	"net/http"

	"pho-paradise-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo documents the order lifecycle for clients.
func GetStateMachineInfo(c *gin.Context) {
	var transitions []gin.H
	for _, status := range statemachine.AllStatuses {
		next, ok := statemachine.Next(status)
		if !ok {
			continue
		}
		transitions = append(transitions, gin.H{"from": status, "to": next})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   transitions,
		"terminal_states": []string{"delivered"},
		"description":     "Order lifecycle: each status has exactly one forward transition",
	})
}
