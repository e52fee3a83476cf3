// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

// Action names understood by the endpoint.
const (
	ActionSubmitTicket     = "submitTicket"
	ActionGetEzoiData      = "getEzoiData"
	ActionGetAIResponse    = "getAiResponse"
	ActionSaveTrainingData = "saveTrainingData"
)

// SubmitTicketRequest files a support ticket. Success: {status:"success", ticketId}.
type SubmitTicketRequest struct {
	Action           string `json:"action"`
	UserName         string `json:"userName"`
	Email            string `json:"email"`
	Program          string `json:"program"`
	ItemType         string `json:"itemType,omitempty"`
	ItemNumber       string `json:"itemNumber"`
	ErrorTitle       string `json:"errorTitle"`
	ErrorDescription string `json:"errorDescription"`
}

// EzoiDataRequest looks up an EZOI asset or inventory item. Success: {item: {...}} or no item.
type EzoiDataRequest struct {
	Action     string `json:"action"`
	ItemType   string `json:"itemType"`
	ItemNumber string `json:"itemNumber"`
}

// AIRequest asks the assistant model for a reply. Success: {candidates:[{content:{parts:[{text}]}}]}.
type AIRequest struct {
	Action string `json:"action"`
	Prompt string `json:"prompt"`
}

// TrainingDataRequest stores a question/expert-answer pair. Success: {status:"success"}.
type TrainingDataRequest struct {
	Action       string `json:"action"`
	UserQuestion string `json:"userQuestion"`
	ExpertAnswer string `json:"expertAnswer"`
}
