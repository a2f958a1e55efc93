package notifier

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/util"
	"fmt"
	"html"
	"strings"
	"time"
)

var platformLabels = map[string]string{
	model.PlatformTikTok:  "TikTok",
	model.PlatformTwitter: "Twitter",
	model.PlatformReddit:  "Reddit",
}

func platformLabel(platform string) string {
	if label, ok := platformLabels[platform]; ok {
		return label
	}
	return platform
}

// BuildViralMessage 爆款告警正文，Telegram HTML 格式
func BuildViralMessage(profile *model.Profile, post *model.Post, baseline, threshold float64) string {
	var b strings.Builder
	b.WriteString("🔥 <b>Viral Post Detected!</b>\n\n")
	fmt.Fprintf(&b, "<b>Platform:</b> %s\n", platformLabel(post.Platform))
	fmt.Fprintf(&b, "<b>Account:</b> @%s\n", html.EscapeString(profile.Username))

	// 按 rune 截断，避免把多字节字符切成非法 UTF-8
	desc := post.Description
	if runes := []rune(desc); len(runes) > 120 {
		desc = string(runes[:120]) + "..."
	}
	if desc != "" {
		fmt.Fprintf(&b, "<b>Post:</b> %s\n", html.EscapeString(desc))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "👁 Views: <b>%s</b>\n", util.CompactNumber(post.ViewCount))
	fmt.Fprintf(&b, "❤️ Likes: %s\n", util.CompactNumber(post.LikeCount))
	fmt.Fprintf(&b, "💬 Comments: %s\n", util.CompactNumber(post.CommentCount))
	fmt.Fprintf(&b, "🔁 Shares: %s\n", util.CompactNumber(post.ShareCount))
	b.WriteString("\n")
	fmt.Fprintf(&b, "📊 Account average: %s views\n", util.CompactNumber(int64(baseline)))
	fmt.Fprintf(&b, "🚀 %.1fx above average (threshold %.1fx)\n", ratio(post.ViewCount, baseline), threshold)

	if post.MediaURL != "" {
		fmt.Fprintf(&b, "\n🔗 %s", post.MediaURL)
	}
	return b.String()
}

// BuildWelcomeMessage 账号加入监控列表时的通知
func BuildWelcomeMessage(profile *model.Profile) string {
	var b strings.Builder
	b.WriteString("✅ <b>Now Tracking</b>\n\n")
	fmt.Fprintf(&b, "<b>Platform:</b> %s\n", platformLabel(profile.Platform))
	fmt.Fprintf(&b, "<b>Account:</b> @%s\n", html.EscapeString(profile.Username))
	fmt.Fprintf(&b, "👥 Followers: %s\n", util.CompactNumber(profile.FollowerCount))
	fmt.Fprintf(&b, "❤️ Total likes: %s\n", util.CompactNumber(profile.TotalLikes))
	return b.String()
}

// BuildCycleSummaryMessage 每轮采集结束后的摘要通知
func BuildCycleSummaryMessage(started time.Time, profilesOK, profilesFailed, newPosts, viralFound int) string {
	var b strings.Builder
	b.WriteString("📋 <b>Scrape Cycle Finished</b>\n\n")
	fmt.Fprintf(&b, "⏱ Duration: %s\n", time.Since(started).Round(time.Second))
	fmt.Fprintf(&b, "✅ Profiles updated: %d\n", profilesOK)
	if profilesFailed > 0 {
		fmt.Fprintf(&b, "⚠️ Profiles failed: %d\n", profilesFailed)
	}
	fmt.Fprintf(&b, "🆕 New posts: %d\n", newPosts)
	fmt.Fprintf(&b, "🔥 Viral detected: %d\n", viralFound)
	return b.String()
}

// BuildCycleFailureMessage 整轮失败时的告警
func BuildCycleFailureMessage(err error) string {
	return fmt.Sprintf("🛑 <b>Scrape Cycle Failed</b>\n\n<code>%s</code>", html.EscapeString(err.Error()))
}

func ratio(views int64, baseline float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return float64(views) / baseline
}
