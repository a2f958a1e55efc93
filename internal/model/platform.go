package model

// 支持的平台标识
const (
	PlatformTikTok  = "tiktok"
	PlatformTwitter = "twitter"
	PlatformReddit  = "reddit"
)

// SupportedPlatforms 平台白名单，校验外部输入时使用
var SupportedPlatforms = map[string]struct{}{
	PlatformTikTok:  {},
	PlatformTwitter: {},
	PlatformReddit:  {},
}

const (
	AlertTypeViral        = "viral_post"
	AlertTypeWelcome      = "welcome"
	AlertTypeCycleSummary = "cycle_summary"
	AlertTypeCycleFail    = "cycle_failure"
)
