package config

type WorkerKeyStruct struct {
	PersistResultsQueue  string
	PersistProgressQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistResultsQueue:  "persist_results_queue",
	PersistProgressQueue: "persist_progress_queue",
}
