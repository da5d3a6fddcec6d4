package book

type CreateBookReq struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
}

type LoanBookReq struct {
	UserName string `json:"userName" validate:"required"`
	BookName string `json:"bookName" validate:"required"`
}

type ReturnBookReq struct {
	UserName string `json:"userName" validate:"required"`
	BookName string `json:"bookName" validate:"required"`
}
