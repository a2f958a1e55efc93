package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrProfileNotFound      = errors.New("账号不存在")
	ErrProfileExist         = errors.New("账号已在监控列表")
	ErrProfileInactive      = errors.New("账号已停止监控")
	ErrPlatformNotSupported = errors.New("不支持的平台")
	ErrPostNotFound         = errors.New("帖子不存在")
	ErrCycleRunning         = errors.New("采集任务正在运行")
	ErrScrapeFailed         = errors.New("抓取失败，请稍后重试")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrProfileNotFound:      NotFound,
	ErrProfileExist:         BadRequest,
	ErrProfileInactive:      BadRequest,
	ErrPlatformNotSupported: BadRequest,
	ErrPostNotFound:         NotFound,
	ErrCycleRunning:         BadRequest,
	ErrScrapeFailed:         InternalServerError,
	UnExpectedError:         InternalServerError,
}
