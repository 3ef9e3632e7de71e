package admin

type Administrator struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MailAddress string `json:"mailAddress"`
	Password    string `json:"-"`
}
