package service

import (
	"Inkstone/internal/content"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserUsernameExist  = errors.New("用户名已存在")
	ErrUserFollowSelf     = errors.New("用户不能关注自己")
	ErrBlogNotFound       = errors.New("博客不存在")
	ErrBlogTitleEmpty     = errors.New("标题不能为空")
	ErrBlogDescEmpty      = errors.New("简介不能为空")
	ErrBlogTagsEmpty      = errors.New("标签不能为空")
	ErrCommentNotFound    = errors.New("评论不存在")
	ErrDraftNotFound      = errors.New("草稿不存在")
	ErrTweetNotFound      = errors.New("推文不存在")
	ErrTweetEmpty         = errors.New("推文内容和图片不能都为空")
	ErrTweetTooLong       = errors.New("推文内容超过长度限制")
	ErrShortURLNotFound   = errors.New("短链接不存在")
	ErrShortCodeExhausted = errors.New("短链接生成失败，请重试")
	ErrFileNotSupported   = errors.New("不支持的文件类型")
	ErrActionDuplicate    = errors.New("重复操作")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUserNotFound:       NotFound,
	ErrUserUsernameExist:  BadRequest,
	ErrUserFollowSelf:     BadRequest,
	ErrBlogNotFound:       NotFound,
	ErrBlogTitleEmpty:     BadRequest,
	ErrBlogDescEmpty:      BadRequest,
	ErrBlogTagsEmpty:      BadRequest,
	ErrCommentNotFound:    NotFound,
	ErrDraftNotFound:      NotFound,
	ErrTweetNotFound:      NotFound,
	ErrTweetEmpty:         BadRequest,
	ErrTweetTooLong:       BadRequest,
	ErrShortURLNotFound:   NotFound,
	ErrShortCodeExhausted: InternalServerError,
	ErrFileNotSupported:   BadRequest,
	ErrActionDuplicate:    BadRequest,
	UnauthorizedError:     Forbidden,
	UnExpectedError:       InternalServerError,

	content.ErrUnknownBlockType: BadRequest,
	content.ErrPayloadMismatch:  BadRequest,
	content.ErrPayloadInvalid:   BadRequest,
	content.ErrBlockNotFound:    NotFound,
	content.ErrIndexOutOfRange:  BadRequest,
}
