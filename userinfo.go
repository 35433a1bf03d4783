package connstr

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/connstr/internal/grammar"
	"github.com/ghettovoice/connstr/internal/util"
)

// UserInfo is a container for user credentials.
// The password is tri-state: absent, explicitly empty or non-empty.
type UserInfo struct {
	usrname, passwd string
	hasPasswd       bool
}

// User returns a [UserInfo] containing the provided username and no password.
func User(usrname string) UserInfo {
	return UserInfo{usrname: usrname}
}

// UserPassword returns a [UserInfo] containing the provided username and password.
// An empty passwd is kept and rendered as "username:".
func UserPassword(usrname, passwd string) UserInfo {
	return UserInfo{usrname: usrname, passwd: passwd, hasPasswd: true}
}

func userInfoFromNode(node *abnf.Node) (UserInfo, error) {
	usrname, _ := node.GetNode(grammar.KeyUsername)
	if usrname.IsEmpty() {
		return UserInfo{}, errtrace.Wrap(newErr(ErrMalformedInput, "empty username"))
	}
	if passwd, ok := node.GetNode(grammar.KeyPassword); ok {
		return UserPassword(grammar.Unescape(usrname.String()), grammar.Unescape(passwd.String())), nil
	}
	return User(grammar.Unescape(usrname.String())), nil
}

// Username returns the username from the UserInfo.
func (ui UserInfo) Username() string { return ui.usrname }

// Password returns the password, in case it is set, and a bool flag indicating whether it is set.
func (ui UserInfo) Password() (string, bool) { return ui.passwd, ui.hasPasswd }

// String returns the escaped "username[:password]" form, without the trailing '@'.
func (ui UserInfo) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(grammar.Escape(ui.usrname, nil))
	if ui.hasPasswd {
		sb.WriteString(":")
		sb.WriteString(grammar.Escape(ui.passwd, nil))
	}
	return sb.String()
}

func (ui UserInfo) redacted() UserInfo {
	if ui.hasPasswd && ui.passwd != "" {
		ui.passwd = util.Mask(ui.passwd)
	}
	return ui
}

// Equal compares this UserInfo with another for equality.
func (ui UserInfo) Equal(val any) bool {
	var other UserInfo
	switch v := val.(type) {
	case UserInfo:
		other = v
	case *UserInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return ui.usrname == other.usrname && ui.passwd == other.passwd && ui.hasPasswd == other.hasPasswd
}

// IsValid checks whether the UserInfo can be rendered, that is it has a username.
func (ui UserInfo) IsValid() bool { return ui.usrname != "" }

// IsZero checks whether the UserInfo is empty.
func (ui UserInfo) IsZero() bool { return ui.usrname == "" && ui.passwd == "" && !ui.hasPasswd }
