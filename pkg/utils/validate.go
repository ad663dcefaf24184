package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"unicode"
)

var linkIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateLinkID 校验链接 ID 是否合法（URL-safe base64 字符集，无 padding）
func ValidateLinkID(linkID string) error {
	if linkID == "" {
		return fmt.Errorf("error.link_id_required")
	}

	if ContainsWhitespace(linkID) {
		return fmt.Errorf("error.link_id_cannot_contain_spaces")
	}

	if len(linkID) > 64 {
		return fmt.Errorf("error.link_id_max_length")
	}

	if !linkIDPattern.MatchString(linkID) {
		return fmt.Errorf("error.link_id_invalid")
	}

	return nil
}

// ValidateTargetURL 校验目标 URL 的合法性
func ValidateTargetURL(targetURL string) error {
	// 1. 检查目标 URL 是否为空
	if targetURL == "" {
		return fmt.Errorf("error.target_url_required")
	}

	// 2. URL 格式校验
	if _, err := url.ParseRequestURI(targetURL); err != nil {
		return fmt.Errorf("error.target_url_invalid")
	}

	// 3. URL 长度限制
	if len(targetURL) > 2048 {
		return fmt.Errorf("error.target_url_max_length")
	}
	return nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
