package mail

type Sender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type leadNotificationData struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	EventName   string
	EventType   string
	Source      string
}

type digestLead struct {
	ClientName string
	EventName  string
	Status     string
	AgeDays    int
}
