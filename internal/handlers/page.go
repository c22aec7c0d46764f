package handlers

import (
	"UserPrefs/internal/model"
	"html/template"
	"regexp"
	"strings"
)

// pageData: данные страницы профиля.
type pageData struct {
	Message string
	User    *model.CurrentUser
}

var pageTemplate = template.Must(template.New("profile").Funcs(template.FuncMap{"cssColor": cssColor}).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Профиль пользователя</title>
    {{- with .User}}
    <style>
        body {
            background-color: {{cssColor .Settings.BgColor}};
            color:            {{cssColor .Settings.FontColor}};
        }
    </style>
    {{- end}}
</head>
<body>
    {{- with .Message}}
    <p>{{.}}</p>
    {{- end}}
    {{- if not .User}}
    <h2>Регистрация</h2>
    <form method="post">
        <input type="hidden" name="action" value="register">
        Логин: <input type="text" name="username"><br>
        Пароль: <input type="password" name="password"><br>
        Цвет фона: <input type="color" name="bg_color" value="{{.DefaultBgColor}}"><br>
        Цвет шрифта: <input type="color" name="font_color" value="{{.DefaultFontColor}}"><br>
        <button type="submit">Зарегистрироваться</button>
    </form>

    <h2>Вход</h2>
    <form method="post">
        <input type="hidden" name="action" value="login">
        Логин: <input type="text" name="username"><br>
        Пароль: <input type="password" name="password"><br>
        <button type="submit">Войти</button>
    </form>
    {{- else}}
    <h2>Добро пожаловать, {{.User.Username}}!</h2>
    <form method="post">
        <input type="hidden" name="action" value="logout">
        <button type="submit">Выйти</button>
    </form>
    {{- end}}
</body>
</html>
`))

func (pageData) DefaultBgColor() string   { return defaultBgColor }
func (pageData) DefaultFontColor() string { return defaultFontColor }

// cssColorRe: имена цветов, #hex и функции вида rgb(1, 2, 3) / hsl(120 50% 50% / .5).
var cssColorRe = regexp.MustCompile(`^[A-Za-z0-9#%.,()/ \-]*$`)

// cssColor пропускает в style значения из безопасного набора символов как есть.
// Остальное отдаётся шаблону строкой, и его CSS-фильтр заменит значение на ZgotmplZ.
func cssColor(v string) any {
	lower := strings.ToLower(v)
	if !cssColorRe.MatchString(v) || strings.Contains(lower, "url") ||
		strings.Contains(lower, "expression") || strings.Contains(v, "/*") {
		return v
	}
	return template.CSS(v)
}
