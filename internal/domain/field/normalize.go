// Package field 实现所有入参共用的规范化与字段校验
//
// 书名、作者、客户姓名、收货地址都是自然键的一部分，
// 写入和查询前必须先经过同一套规范化，保证 "  the GREAT   gatsby"
// 与 "The Great Gatsby" 落到同一行。
package field

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Normalize 规范化文本
// 步骤：
//  1. 先做NFC合成（分解形式的"É"与"É"视为同一个字母），
//     再把连续空白折叠为一个空格（首尾空白去掉）
//  2. 只允许字母、数字和空格，否则返回ErrInvalidCharacter
//  3. 整体转小写后，每个词只把第一个字符转大写
//
// 第3步不能用cases.Title：它会把数字后面的第一个字母也当作词首，"3rd"变成"3Rd"
func Normalize(text string) (string, error) {
	words := strings.Fields(norm.NFC.String(text))
	for _, w := range words {
		for _, r := range w {
			if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
				return "", apperrors.ErrInvalidCharacter
			}
		}
	}

	for i, w := range words {
		words[i] = capitalize(strings.ToLower(w))
	}
	return strings.Join(words, " "), nil
}

// capitalize 首字符转Title形式，其余不动
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToTitle(r)) + w[size:]
}
