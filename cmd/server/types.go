package main

type Webhook struct {
	Messages []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Body    string `json:"body"`
	Date    int64  `json:"date"`
}

type WebhookResponse struct {
	Fetched    int      `json:"fetched"`
	New        int      `json:"new"`
	Duplicates int      `json:"duplicates"`
	Rejected   int      `json:"rejected"`
	Errors     []string `json:"errors,omitempty"`
}
