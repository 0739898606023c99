package task

// Job 与 cron.Job 接口兼容，带一个可读的名字。
type Job interface {
	Run()
	Name() string
}

// ResultJob 可以报告最近一次执行结果的任务
type ResultJob interface {
	Job
	LastError() error
}
