package common

// RequestIDHeaderName is the HTTP header used to correlate a client call
// with the store-side log line that served it.
const RequestIDHeaderName = "X-Request-ID"

// TasksPath is the collection path of the task store.
const TasksPath = "/tasks"
