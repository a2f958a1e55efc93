package consts

const (
	// DefaultViralThreshold 账号均值的倍数，超过即判定为爆款
	DefaultViralThreshold = 5.0

	// DefaultLookbackDays 基线计算回看窗口（天）
	DefaultLookbackDays = 30

	// DefaultMinPostAgeHours 基线排除的新内容年龄下限（小时）
	DefaultMinPostAgeHours = 24

	// DefaultMaxPostsPerProfile 单账号每轮抓取的内容上限
	DefaultMaxPostsPerProfile = 50

	// DefaultIntervalHours 采集轮询间隔（小时）
	DefaultIntervalHours = 6

	// DefaultWorkers 单轮采集的并发账号数
	DefaultWorkers = 4
)
