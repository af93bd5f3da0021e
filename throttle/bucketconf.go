package throttle

import "time"

type BucketConf struct {
	Burst     int           `json:"burst"`     // maximum number of tokens in the bucket
	Increment int           `json:"increment"` // how many tokens to add each period
	Period    time.Duration `json:"period"`    // how often to add Increment. JSON in nanoseconds
}
