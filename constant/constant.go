package constant

import (
	"time"
)

const (
	SVG_EXTENSION  = ".svg"
	HTML_EXTENSION = ".html"

	SCHEMA_FILE = "db/schema.sql"

	FILES_PATH           = "files"
	DEFAULT_INPUT_DIR    = FILES_PATH + "/seatplans"
	DEFAULT_REPORT_FILE  = FILES_PATH + "/seatplan_report.json"
	DEFAULT_RECORDS_FILE = FILES_PATH + "/seatplans.jsonl"
	DEFAULT_LOG_PATH     = "logs/"

	PROGRESS_INTERVAL = 1 * time.Second
)
